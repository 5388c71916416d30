package model

import "testing"

func TestTrainingFocusLabel(t *testing.T) {
	t.Parallel()

	cases := map[TrainingFocus]string{
		FocusFingerStrength:     "Finger Strength",
		FocusPower:              "Power",
		FocusEndurance:          "Endurance",
		FocusTechnique:          "Technique",
		FocusFlexibility:        "Flexibility",
		FocusCoreStrength:       "Core Strength",
		FocusAntagonistTraining: "Antagonist Training",
	}
	for focus, want := range cases {
		if got := focus.Label(); got != want {
			t.Errorf("Label(%q) = %q, want %q", focus, got, want)
		}
	}
}

func TestTrainingFocusValid(t *testing.T) {
	t.Parallel()

	for _, f := range AllTrainingFocuses {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if TrainingFocus("crimping").Valid() {
		t.Errorf("unknown focus should be invalid")
	}
}

func TestDifficultyValid(t *testing.T) {
	t.Parallel()

	for _, d := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if Difficulty("brutal").Valid() {
		t.Errorf("unknown difficulty should be invalid")
	}
}

func TestJobStatusTerminal(t *testing.T) {
	t.Parallel()

	if JobStatusRunning.Terminal() {
		t.Errorf("running must not be terminal")
	}
	if !JobStatusDone.Terminal() || !JobStatusError.Terminal() {
		t.Errorf("done and error must be terminal")
	}
}

func TestJobRecordCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	orig := &JobRecord{
		JobID:    "01JCLONE",
		Status:   JobStatusDone,
		Workouts: []Workout{{ID: "w1", Title: "Session"}},
	}
	cp := orig.Clone()
	cp.Workouts[0].Title = "mutated"
	if orig.Workouts[0].Title != "Session" {
		t.Fatalf("Clone shares the workouts slice")
	}
}
