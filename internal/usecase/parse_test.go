package usecase

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"crux-coach/internal/domain"
	"crux-coach/internal/domain/model"
)

const fullWorkoutJSON = `{
  "title": "Fingerboard Max Hangs",
  "focus": ["finger_strength"],
  "estimatedDuration": 75,
  "difficulty": "advanced",
  "warmup": [
    {"name": "Easy traversing", "duration": "10 min", "instructions": "Stay on jugs"}
  ],
  "exercises": [
    {"name": "Max hangs", "sets": 5, "reps": 1, "duration": "10s", "rest": "3 min", "instructions": "Half crimp on 20mm edge", "notes": "Stop on sharp pain"}
  ],
  "cooldown": [
    {"name": "Forearm stretches", "duration": "5 min"}
  ],
  "notes": "Skip if fingers feel tweaky."
}`

func TestParseWorkout_FullDocument(t *testing.T) {
	t.Parallel()

	w, err := ParseWorkout(fullWorkoutJSON, model.FocusFingerStrength)
	if err != nil {
		t.Fatalf("ParseWorkout returned error: %v", err)
	}
	if w.ID == "" {
		t.Fatalf("expected generated id")
	}
	if w.Title != "Fingerboard Max Hangs" {
		t.Fatalf("title = %q", w.Title)
	}
	if w.EstimatedDuration != 75 {
		t.Fatalf("estimatedDuration = %d, want 75", w.EstimatedDuration)
	}
	if w.Difficulty != model.DifficultyAdvanced {
		t.Fatalf("difficulty = %q", w.Difficulty)
	}
	if len(w.Warmup) != 1 || len(w.Exercises) != 1 || len(w.Cooldown) != 1 {
		t.Fatalf("list lengths = %d/%d/%d", len(w.Warmup), len(w.Exercises), len(w.Cooldown))
	}
	if w.Exercises[0].Sets != 5 || w.Exercises[0].Rest != "3 min" {
		t.Fatalf("exercise fields not mapped: %+v", w.Exercises[0])
	}
	if w.Notes != "Skip if fingers feel tweaky." {
		t.Fatalf("notes = %q", w.Notes)
	}
}

func TestParseWorkout_ArrayTakesFirstElement(t *testing.T) {
	t.Parallel()

	raw := "[" + fullWorkoutJSON + "," + strings.Replace(fullWorkoutJSON, "Fingerboard Max Hangs", "Second", 1) + "]"
	w, err := ParseWorkout(raw, model.FocusFingerStrength)
	if err != nil {
		t.Fatalf("ParseWorkout returned error: %v", err)
	}
	if w.Title != "Fingerboard Max Hangs" {
		t.Fatalf("expected first element, got title %q", w.Title)
	}
}

func TestParseWorkout_CodeFenceStripped(t *testing.T) {
	t.Parallel()

	raw := "```json\n" + fullWorkoutJSON + "\n```"
	if _, err := ParseWorkout(raw, model.FocusFingerStrength); err != nil {
		t.Fatalf("fenced document should parse: %v", err)
	}
}

func TestParseWorkout_Truncated(t *testing.T) {
	t.Parallel()

	_, err := ParseWorkout(`{"title": "short"}`, model.FocusPower)
	var trunc *domain.TruncatedResponseError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedResponseError, got %T (%v)", err, err)
	}
	if trunc.Length != len(`{"title": "short"}`) {
		t.Fatalf("reported length = %d", trunc.Length)
	}
}

func TestParseWorkout_Malformed(t *testing.T) {
	t.Parallel()

	raw := "Here is your workout plan! " + strings.Repeat("It will be great. ", 10)
	_, err := ParseWorkout(raw, model.FocusPower)
	var malformed *domain.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T (%v)", err, err)
	}
	if malformed.Snippet == "" || len(malformed.Snippet) > 200 {
		t.Fatalf("snippet length = %d", len(malformed.Snippet))
	}
}

func TestParseWorkout_SnippetKeepsRunesIntact(t *testing.T) {
	t.Parallel()

	// Multi-byte runes straddling the 200-byte cap must not be split.
	raw := "Voilà votre entraînement ! " + strings.Repeat("é", 200)
	_, err := ParseWorkout(raw, model.FocusPower)
	var malformed *domain.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T (%v)", err, err)
	}
	if len(malformed.Snippet) > 200 {
		t.Fatalf("snippet length = %d bytes", len(malformed.Snippet))
	}
	if !utf8.ValidString(malformed.Snippet) {
		t.Fatalf("snippet is not valid UTF-8: %q", malformed.Snippet)
	}
}

func TestParseWorkout_EmptyArray(t *testing.T) {
	t.Parallel()

	// Padded so the truncation gate does not fire first.
	raw := "[" + strings.Repeat(" ", 120) + "]"
	_, err := ParseWorkout(raw, model.FocusEndurance)
	var empty *domain.EmptyResponseError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResponseError, got %T (%v)", err, err)
	}
}

func TestParseWorkout_MissingTitle(t *testing.T) {
	t.Parallel()

	raw := `{"focus": ["power"], "estimatedDuration": 60, "difficulty": "advanced", "exercises": [], "notes": "padding padding padding"}`
	_, err := ParseWorkout(raw, model.FocusPower)
	var invalid *domain.InvalidWorkoutError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidWorkoutError, got %T (%v)", err, err)
	}
}

func TestParseWorkout_Defaults(t *testing.T) {
	t.Parallel()

	// Only a title plus padding: every other field must come from defaults.
	raw := `{"title": "Minimal Session", "somePadding": "` + strings.Repeat("x", 100) + `"}`
	w, err := ParseWorkout(raw, model.FocusTechnique)
	if err != nil {
		t.Fatalf("ParseWorkout returned error: %v", err)
	}
	if len(w.Focus) != 1 || w.Focus[0] != string(model.FocusTechnique) {
		t.Fatalf("focus default = %v", w.Focus)
	}
	if w.EstimatedDuration != 60 {
		t.Fatalf("estimatedDuration default = %d", w.EstimatedDuration)
	}
	if w.Difficulty != model.DifficultyIntermediate {
		t.Fatalf("difficulty default = %q", w.Difficulty)
	}
	if w.Warmup == nil || len(w.Warmup) != 0 {
		t.Fatalf("warmup default = %v", w.Warmup)
	}
	if w.Exercises == nil || len(w.Exercises) != 0 {
		t.Fatalf("exercises default = %v", w.Exercises)
	}
	if w.Cooldown == nil || len(w.Cooldown) != 0 {
		t.Fatalf("cooldown default = %v", w.Cooldown)
	}
	if w.Notes != "" {
		t.Fatalf("notes default = %q", w.Notes)
	}
}

func TestParseWorkout_UnknownDifficultyFallsBack(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(fullWorkoutJSON, `"advanced"`, `"brutal"`, 1)
	w, err := ParseWorkout(raw, model.FocusFingerStrength)
	if err != nil {
		t.Fatalf("ParseWorkout returned error: %v", err)
	}
	if w.Difficulty != model.DifficultyIntermediate {
		t.Fatalf("difficulty = %q, want intermediate fallback", w.Difficulty)
	}
}

func TestParseWorkout_PermissiveFocusStrings(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(fullWorkoutJSON, `["finger_strength"]`, `["grip endurance", "crimp power"]`, 1)
	w, err := ParseWorkout(raw, model.FocusFingerStrength)
	if err != nil {
		t.Fatalf("ParseWorkout returned error: %v", err)
	}
	if len(w.Focus) != 2 || w.Focus[0] != "grip endurance" {
		t.Fatalf("focus = %v", w.Focus)
	}
}
