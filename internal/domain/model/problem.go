package model

import (
	"encoding/json"
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

type Problem struct {
	ID          string            `json:"id"`
	ModuleID    string            `json:"module_id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Difficulty  ProblemDifficulty `json:"difficulty"`
	Description string            `json:"description"`
	StarterCode json.RawMessage   `json:"starter_code,omitempty"` // language slug -> snippet
	SortOrder   int               `json:"order"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	TestCases   []TestCase        `json:"test_cases,omitempty"`
	Module      *ModuleRef        `json:"module,omitempty"`
}

// ProblemSummary is the listing view (no description, no test cases).
type ProblemSummary struct {
	ID         string            `json:"id"`
	ModuleID   string            `json:"module_id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Difficulty ProblemDifficulty `json:"difficulty"`
	SortOrder  int               `json:"order"`
}

type TestCase struct {
	ID             string `json:"id,omitempty"`
	ProblemID      string `json:"problem_id,omitempty"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	SortOrder      int    `json:"sort_order,omitempty"`
}
