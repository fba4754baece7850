package model

import "time"

// SubmissionStatus values are the wire-level verdict names the frontend
// renders; they must stay stable.
type SubmissionStatus string

const (
	StatusAccepted            SubmissionStatus = "ACCEPTED"
	StatusWrongAnswer         SubmissionStatus = "WRONG_ANSWER"
	StatusTimeLimitExceeded   SubmissionStatus = "TIME_LIMIT_EXCEEDED"
	StatusMemoryLimitExceeded SubmissionStatus = "MEMORY_LIMIT_EXCEEDED"
	StatusCompilationError    SubmissionStatus = "COMPILATION_ERROR"
	StatusRuntimeError        SubmissionStatus = "RUNTIME_ERROR"
)

// Submission is an append-only record; verdict fields are never mutated
// after creation.
type Submission struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	ProblemID       string           `json:"problem_id"`
	Code            string           `json:"code"`
	Language        string           `json:"language"`
	Status          SubmissionStatus `json:"status"`
	ExecutionTimeMs int              `json:"execution_time_ms"`
	MemoryUsedKb    int              `json:"memory_used_kb"`
	TestCasesPassed int              `json:"test_cases_passed"`
	TotalTestCases  int              `json:"total_test_cases"`
	CreatedAt       time.Time        `json:"created_at"`
}
