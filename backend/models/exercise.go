package models

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

// ParseDifficulty normalises free-form catalog input. Anything that is not
// easy, medium or hard is unknown.
func ParseDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyUnknown
	}
}

// SceneObject is an opaque scene descriptor. It is stored and forwarded as-is.
type SceneObject map[string]interface{}

type Exercise struct {
	Name                   string        `gorm:"primaryKey" json:"name" yaml:"name"`
	Difficulty             Difficulty    `gorm:"not null" json:"difficulty" yaml:"difficulty"`
	SceneObjects           []SceneObject `gorm:"serializer:json" json:"objects" yaml:"objects"`
	ExpectedCompletionTime *float64      `json:"expectedCompletionTime,omitempty" yaml:"expectedCompletionTime"`
	ExpectedActionCount    *float64      `json:"expectedNumOfActions,omitempty" yaml:"expectedNumOfActions"`
	Position               int           `gorm:"not null;index" json:"-" yaml:"-"` // catalog order
	CreatedAt              time.Time     `json:"-" yaml:"-"`
	UpdatedAt              time.Time     `json:"-" yaml:"-"`
}

// ExerciseSummary is the listing projection of an Exercise.
type ExerciseSummary struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
}

func (e Exercise) Summary() ExerciseSummary {
	return ExerciseSummary{Name: e.Name, Difficulty: ParseDifficulty(string(e.Difficulty))}
}
