package types

// Level is an ordinal proficiency level
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// Levels lists all levels from lowest to highest
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Rank returns the ordinal position of the level (beginner = 0).
// Unknown levels rank below beginner.
func (l Level) Rank() int {
	for i, lv := range Levels {
		if lv == l {
			return i
		}
	}
	return -1
}

// Multiplier returns the weight multiplier applied to a matched keyword at this level
func (l Level) Multiplier() float64 {
	switch l {
	case LevelBeginner:
		return 0.7
	case LevelIntermediate:
		return 1.0
	case LevelAdvanced:
		return 1.3
	case LevelExpert:
		return 1.5
	default:
		return 1.0
	}
}

// SkillLevel is the inferred proficiency for one skill in one resume
type SkillLevel struct {
	Skill      string  `json:"skill"`
	Level      Level   `json:"level"`
	Years      *int    `json:"years,omitempty"`
	Confidence float64 `json:"confidence"`
}

// LevelDistribution counts skills per level
type LevelDistribution struct {
	Beginner     int `json:"beginner"`
	Intermediate int `json:"intermediate"`
	Advanced     int `json:"advanced"`
	Expert       int `json:"expert"`
}

// SkillLevelSummary aggregates a set of skill levels
type SkillLevelSummary struct {
	TotalSkills          int               `json:"total_skills"`
	LevelDistribution    LevelDistribution `json:"level_distribution"`
	AverageYears         *float64          `json:"average_years,omitempty"`
	HighConfidenceSkills []string          `json:"high_confidence_skills"`
	ExpertSkills         []string          `json:"expert_skills"`
	AdvancedSkills       []string          `json:"advanced_skills"`
}
