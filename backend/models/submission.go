package models

import "time"

// Submission is the audit trail of reconciled answers. The metrics are kept
// for observability and never feed back into progress.
type Submission struct {
	ID              string   `gorm:"primaryKey;size:36"`
	UserID          string   `gorm:"not null;index"`
	QuestionName    string   `gorm:"not null"`
	Passed          bool     `gorm:"not null"`
	NumberOfActions *int
	TimeTaken       *float64
	Score           *float64
	CreatedAt       time.Time
}
