package model

import "time"

type ClimbingDiscipline string

const (
	DisciplineBouldering ClimbingDiscipline = "bouldering"
	DisciplineSport      ClimbingDiscipline = "sport"
	DisciplineTrad       ClimbingDiscipline = "trad"
	DisciplineMixed      ClimbingDiscipline = "mixed"
)

// ClimbingLevel pairs a discipline with a free-form grade ("V4", "5.11a", ...).
type ClimbingLevel struct {
	Discipline ClimbingDiscipline `json:"discipline"`
	Grade      string             `json:"grade"`
}

type TrainingGoal string

const (
	GoalIncreaseGrade    TrainingGoal = "increase_grade"
	GoalBuildEndurance   TrainingGoal = "build_endurance"
	GoalPreventInjury    TrainingGoal = "prevent_injury"
	GoalImproveTechnique TrainingGoal = "improve_technique"
	GoalCompetitionPrep  TrainingGoal = "competition_prep"
	GoalGeneralFitness   TrainingGoal = "general_fitness"
)

type Equipment string

const (
	EquipmentHangboard       Equipment = "hangboard"
	EquipmentCampusBoard     Equipment = "campus_board"
	EquipmentSystemsWall     Equipment = "systems_wall"
	EquipmentResistanceBands Equipment = "resistance_bands"
	EquipmentWeights         Equipment = "weights"
	EquipmentPullUpBar       Equipment = "pull_up_bar"
	EquipmentRings           Equipment = "rings"
	EquipmentNone            Equipment = "none"
)

// Limitation is an injury or other constraint the plan must respect.
type Limitation struct {
	Type        string `json:"type"` // injury | time | other
	Description string `json:"description"`
}

type WeeklyAvailability struct {
	DaysPerWeek       int `json:"daysPerWeek"`
	MinutesPerSession int `json:"minutesPerSession"`
}

// UserProfile is the immutable input to workout generation.
type UserProfile struct {
	ID                 string             `json:"id,omitempty"`
	Name               string             `json:"name"`
	ExperienceYears    int                `json:"experienceYears"`
	ClimbingLevels     []ClimbingLevel    `json:"climbingLevels"`
	Goals              []TrainingGoal     `json:"goals"`
	AvailableEquipment []Equipment        `json:"availableEquipment"`
	WeeklyAvailability WeeklyAvailability `json:"weeklyAvailability"`
	Limitations        []Limitation       `json:"limitations"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt,omitempty"`
}
