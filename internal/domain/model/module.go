package model

import "time"

type Module struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	SortOrder   int              `json:"order"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Topics      []Topic          `json:"topics,omitempty"`
	Problems    []ProblemSummary `json:"problems,omitempty"`
}

// ModuleRef is the embedded module view returned alongside problems
// and progress records.
type ModuleRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SortOrder int    `json:"order"`
}

type Topic struct {
	ID        string    `json:"id"`
	ModuleID  string    `json:"module_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
