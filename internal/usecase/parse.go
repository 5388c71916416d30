package usecase

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"

	"github.com/google/uuid"
)

// A real single-workout JSON document cannot plausibly be shorter than this;
// anything below it is treated as a truncated response.
const minPlausibleResponseLen = 100

// How much of the offending text to keep for diagnostics.
const malformedSnippetLen = 200

const defaultEstimatedDuration = 60

// ParseWorkout turns one raw model response into a validated Workout.
// Every failure is classified as exactly one of the typed errors in the
// domain package; it never returns an opaque error. Pure apart from the id
// and creation timestamp.
//
// Defaulting rules: focus falls back to [requestedFocus] when absent or
// empty, estimatedDuration to 60, difficulty to intermediate when absent or
// not a known value, the three exercise lists to empty lists when absent or
// not list-shaped, notes to "". Focus entries are accepted as arbitrary
// strings; only difficulty is validated against the enum.
func ParseWorkout(raw string, requestedFocus model.TrainingFocus) (*model.Workout, error) {
	text := strings.TrimSpace(raw)
	if len(text) < minPlausibleResponseLen {
		return nil, &domain.TruncatedResponseError{Length: len(text)}
	}

	// The prompt forbids code fences; strip them anyway.
	text = stripCodeFence(text)

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &domain.MalformedResponseError{Snippet: snippetOf(text), Cause: err}
	}

	// Accept either a bare object or an array; take the first element.
	var element any
	switch v := parsed.(type) {
	case []any:
		if len(v) == 0 {
			return nil, &domain.EmptyResponseError{}
		}
		element = v[0]
	default:
		element = parsed
	}

	obj, ok := element.(map[string]any)
	if !ok || obj == nil {
		return nil, &domain.InvalidWorkoutError{Reason: "element is not an object"}
	}

	title := stringField(obj, "title")
	if title == "" {
		return nil, &domain.InvalidWorkoutError{Reason: "missing title - response may be incomplete"}
	}

	w := &model.Workout{
		ID:                uuid.NewString(),
		Title:             title,
		Focus:             focusList(obj["focus"], requestedFocus),
		EstimatedDuration: intField(obj, "estimatedDuration", defaultEstimatedDuration),
		Difficulty:        difficultyField(obj),
		Warmup:            exerciseList(obj["warmup"]),
		Exercises:         exerciseList(obj["exercises"]),
		Cooldown:          exerciseList(obj["cooldown"]),
		Notes:             stringField(obj, "notes"),
		CreatedAt:         time.Now(),
	}
	return w, nil
}

// snippetOf caps the diagnostic text, backing up to a rune boundary so a
// multi-byte character is never split mid-sequence.
func snippetOf(text string) string {
	if len(text) <= malformedSnippetLen {
		return text
	}
	end := malformedSnippetLen
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[:end]
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func intField(obj map[string]any, key string, def int) int {
	if f, ok := obj[key].(float64); ok && f > 0 {
		return int(f)
	}
	return def
}

func difficultyField(obj map[string]any) model.Difficulty {
	if s, ok := obj["difficulty"].(string); ok {
		if d := model.Difficulty(s); d.Valid() {
			return d
		}
	}
	return model.DifficultyIntermediate
}

func focusList(v any, requested model.TrainingFocus) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{string(requested)}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{string(requested)}
	}
	return out
}

func exerciseList(v any) []model.Exercise {
	arr, ok := v.([]any)
	if !ok {
		return []model.Exercise{}
	}
	out := make([]model.Exercise, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Exercise{
			Name:         stringField(obj, "name"),
			Sets:         intField(obj, "sets", 0),
			Reps:         intField(obj, "reps", 0),
			Duration:     stringField(obj, "duration"),
			Rest:         stringField(obj, "rest"),
			Instructions: stringField(obj, "instructions"),
			Notes:        stringField(obj, "notes"),
		})
	}
	return out
}
