package models

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in_progress"
	StatusIncomplete Status = "incomplete"
)

type DashboardRow struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	Attempts   int        `json:"attempts"`
	Status     Status     `json:"status"`
}
