package usecase

import (
	"fmt"
	"strings"

	"crux-coach/internal/domain/model"

	"github.com/pkoukk/tiktoken-go"
)

// Output-shape limits the model must follow. The parser tolerates violations;
// these exist to keep every response well inside the completion token budget.
const (
	maxWarmupItems      = 3
	maxExerciseItems    = 6
	maxCooldownItems    = 2
	maxInstructionChars = 160
	maxNotesChars       = 200
)

// BuildWorkoutPrompt renders the instruction string for exactly one focus
// area. One focus area per model call keeps each response small enough that
// provider-side truncation is not a realistic risk; batching all areas into a
// single prompt is what empirically truncates.
// Pure: deterministic for the same inputs.
func BuildWorkoutPrompt(profile *model.UserProfile, focus model.TrainingFocus, preferredDays []string, notes string) string {
	levels := make([]string, 0, len(profile.ClimbingLevels))
	for _, l := range profile.ClimbingLevels {
		levels = append(levels, fmt.Sprintf("%s: %s", l.Discipline, l.Grade))
	}
	goals := make([]string, 0, len(profile.Goals))
	for _, g := range profile.Goals {
		goals = append(goals, string(g))
	}
	equipment := make([]string, 0, len(profile.AvailableEquipment))
	for _, e := range profile.AvailableEquipment {
		equipment = append(equipment, string(e))
	}
	limitations := make([]string, 0, len(profile.Limitations))
	for _, l := range profile.Limitations {
		limitations = append(limitations, fmt.Sprintf("%s: %s", l.Type, l.Description))
	}

	equipmentStr := strings.Join(equipment, ", ")
	if equipmentStr == "" {
		equipmentStr = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert climbing coach. Generate ONE personalized training workout for the following climber profile:\n\n")
	fmt.Fprintf(&b, "**Climber Profile:**\n")
	fmt.Fprintf(&b, "- Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "- Experience: %d years\n", profile.ExperienceYears)
	fmt.Fprintf(&b, "- Climbing Levels: %s\n", strings.Join(levels, ", "))
	fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(goals, ", "))
	fmt.Fprintf(&b, "- Available Equipment: %s\n", equipmentStr)
	fmt.Fprintf(&b, "- Weekly Availability: %d days/week, %d minutes/session\n",
		profile.WeeklyAvailability.DaysPerWeek, profile.WeeklyAvailability.MinutesPerSession)
	if len(limitations) > 0 {
		fmt.Fprintf(&b, "- Limitations: %s\n", strings.Join(limitations, "; "))
	}
	if notes != "" {
		fmt.Fprintf(&b, "- Additional Notes: %s\n", notes)
	}

	fmt.Fprintf(&b, "\n**Training Focus Area:** %s (%s)\n", focus.Label(), focus)
	fmt.Fprintf(&b, "**Preferred Training Days:** %s\n\n", strings.Join(preferredDays, ", "))

	fmt.Fprintf(&b, "Generate ONE specific, detailed workout focused on %s. The workout should:\n", focus.Label())
	fmt.Fprintf(&b, "1. Be appropriate for the climber's level and goals\n")
	fmt.Fprintf(&b, "2. Use only the available equipment (or bodyweight if no equipment)\n")
	fmt.Fprintf(&b, "3. Respect any limitations mentioned\n")
	fmt.Fprintf(&b, "4. Fit within the time constraints (%d minutes)\n", profile.WeeklyAvailability.MinutesPerSession)
	fmt.Fprintf(&b, "5. Include specific exercises with sets, reps, duration, and rest periods\n")
	fmt.Fprintf(&b, "6. Be practical and safe\n\n")

	fmt.Fprintf(&b, "HARD OUTPUT LIMITS (must follow exactly):\n")
	fmt.Fprintf(&b, "- Return a JSON array with EXACTLY ONE workout object.\n")
	fmt.Fprintf(&b, "- warmup: 2-%d items maximum.\n", maxWarmupItems)
	fmt.Fprintf(&b, "- exercises: 4-%d items maximum.\n", maxExerciseItems)
	fmt.Fprintf(&b, "- cooldown: 1-%d items maximum.\n", maxCooldownItems)
	fmt.Fprintf(&b, "- Each \"instructions\" string must be at most %d characters.\n", maxInstructionChars)
	fmt.Fprintf(&b, "- \"notes\" must be at most %d characters.\n", maxNotesChars)
	fmt.Fprintf(&b, "- Do NOT include markdown, backticks, the word 'json', or commentary.\n")
	fmt.Fprintf(&b, "- Output must be valid JSON.\n\n")

	fmt.Fprintf(&b, `JSON Structure (return exactly this format):
[{
  "title": "Descriptive workout title",
  "focus": ["%s"],
  "estimatedDuration": number (in minutes, max %d),
  "difficulty": "beginner" | "intermediate" | "advanced",
  "warmup": [
    {
      "name": "Exercise name",
      "duration": "time",
      "instructions": "Brief how-to"
    }
  ],
  "exercises": [
    {
      "name": "Exercise name",
      "sets": number,
      "reps": number,
      "duration": "time (if applicable)",
      "rest": "rest period",
      "instructions": "Brief instructions",
      "notes": "Important notes (optional)"
    }
  ],
  "cooldown": [
    {
      "name": "Exercise name",
      "duration": "time",
      "instructions": "Brief how-to"
    }
  ],
  "notes": "Overall workout notes"
}]

Return ONLY the JSON array, nothing else.`, focus, profile.WeeklyAvailability.MinutesPerSession)

	return b.String()
}

// EstimatePromptTokens counts prompt tokens with the cl100k_base encoding.
// Best-effort: a provider may tokenize differently, and a missing encoding
// falls back to a character heuristic rather than failing the call.
func EstimatePromptTokens(prompt string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return len(prompt) / 4
	}
	return len(enc.Encode(prompt, nil, nil))
}
