package model

import "time"

// DailyChallenge designates one problem per calendar day. Date is stored
// truncated to midnight and carries a unique index, so at most one row can
// exist for any given day.
type DailyChallenge struct {
	ID        string    `json:"id"`
	ProblemID string    `json:"problem_id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Problem   *Problem  `json:"problem,omitempty"`
}
