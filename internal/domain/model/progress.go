package model

import "time"

type UserProgress struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ModuleID        string     `json:"module_id"`
	Completed       bool       `json:"completed"`
	CompletedTopics []string   `json:"completed_topics"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Module          *ModuleRef `json:"module,omitempty"`
}

// ProgressStats aggregates a user's submission history.
type ProgressStats struct {
	TotalSubmissions    int `json:"total_submissions"`
	SolvedProblems      int `json:"solved_problems"` // distinct problems with an accepted submission
	AcceptedSubmissions int `json:"accepted_submissions"`
}
