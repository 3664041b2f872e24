package models

import "time"

// ProgressRecord is a user's attempt/pass state across the catalog.
type ProgressRecord struct {
	UserID    string             `gorm:"primaryKey" json:"userId"`
	Questions []QuestionProgress `gorm:"foreignKey:UserID;references:UserID" json:"questions"`
	CreatedAt time.Time          `json:"-"`
	UpdatedAt time.Time          `json:"-"`
}

type QuestionProgress struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_question_progress_user_name" json:"-"`
	Name      string    `gorm:"not null;uniqueIndex:idx_question_progress_user_name" json:"name"`
	Attempts  int       `gorm:"not null" json:"attempts"`
	Passed    bool      `gorm:"not null" json:"passed"`
	UpdatedAt time.Time `json:"-"`
}

func (QuestionProgress) TableName() string {
	return "question_progress"
}

// Entry returns the progress for the named exercise, if any.
func (r *ProgressRecord) Entry(name string) (QuestionProgress, bool) {
	if r == nil {
		return QuestionProgress{}, false
	}
	for _, q := range r.Questions {
		if q.Name == name {
			return q, true
		}
	}
	return QuestionProgress{}, false
}
