package model

import (
	"strings"
	"time"
)

// TrainingFocus is one focus area a generated workout targets.
type TrainingFocus string

const (
	FocusFingerStrength     TrainingFocus = "finger_strength"
	FocusPower              TrainingFocus = "power"
	FocusEndurance          TrainingFocus = "endurance"
	FocusTechnique          TrainingFocus = "technique"
	FocusFlexibility        TrainingFocus = "flexibility"
	FocusCoreStrength       TrainingFocus = "core_strength"
	FocusAntagonistTraining TrainingFocus = "antagonist_training"
)

// AllTrainingFocuses lists the known focus areas in a stable order.
var AllTrainingFocuses = []TrainingFocus{
	FocusFingerStrength,
	FocusPower,
	FocusEndurance,
	FocusTechnique,
	FocusFlexibility,
	FocusCoreStrength,
	FocusAntagonistTraining,
}

// Valid reports whether f is one of the known focus areas.
func (f TrainingFocus) Valid() bool {
	for _, k := range AllTrainingFocuses {
		if f == k {
			return true
		}
	}
	return false
}

// Label renders the focus in human form: "finger_strength" -> "Finger Strength".
func (f TrainingFocus) Label() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Exercise is one item inside a workout's warmup, main or cooldown block.
type Exercise struct {
	Name         string `json:"name"`
	Sets         int    `json:"sets,omitempty"`
	Reps         int    `json:"reps,omitempty"`
	Duration     string `json:"duration,omitempty"` // "30 seconds", "5 minutes"
	Rest         string `json:"rest,omitempty"`
	Instructions string `json:"instructions"`
	Notes        string `json:"notes,omitempty"`
}

// Workout is created exactly once by the response parser and is immutable
// afterwards. Focus values are kept as strings to preserve whatever the model
// returned; only difficulty is validated against the enum.
type Workout struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Focus             []string   `json:"focus"`
	EstimatedDuration int        `json:"estimatedDuration"` // minutes
	Difficulty        Difficulty `json:"difficulty"`
	Warmup            []Exercise `json:"warmup"`
	Exercises         []Exercise `json:"exercises"`
	Cooldown          []Exercise `json:"cooldown"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
}
