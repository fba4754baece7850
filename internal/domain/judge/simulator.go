// Package judge simulates code execution and verdict determination. There is
// no sandbox or interpreter behind it: verdicts are derived from marker
// substrings in the submitted code, which is all the product needs while the
// real executor does not exist. The Result shape is the contract a genuine
// judge would have to honor.
package judge

import (
	"fmt"
	"math/rand"
	"strings"

	"algolearn/internal/domain/model"
)

const (
	// Markers checked in priority order. The order is load-bearing:
	// downstream fixtures and the seeded problems rely on it.
	markerCompilationError = "syntax error"
	markerTimeLimit        = "infinite loop"
	markerMemoryLimit      = "memory leak"
	markerRuntimeError     = "runtime error"
	markerWrongAnswer      = "wrong answer"

	defaultTotalCases = 5

	timeLimitMs     = 5000
	memoryLimitKb   = 500000
	minExecTimeMs   = 20
	execTimeRangeMs = 200
	minMemoryKb     = 5000
	memoryRangeKb   = 50000
)

// Result is the outcome of evaluating a submission.
type Result struct {
	Status          model.SubmissionStatus `json:"status"`
	TestCasesPassed int                    `json:"test_cases_passed"`
	TotalTestCases  int                    `json:"total_test_cases"`
	ExecutionTimeMs int                    `json:"execution_time_ms"`
	MemoryUsedKb    int                    `json:"memory_used_kb"`
}

// Evaluate maps submitted source code to a verdict. Status and pass counts
// are deterministic in (code, testCases); timing and memory are presentation
// values randomized within fixed ranges, except where a verdict pins them.
func Evaluate(code, language string, testCases []model.TestCase) Result {
	total := len(testCases)
	if total == 0 {
		total = defaultTotalCases
	}

	execTime := minExecTimeMs + rand.Intn(execTimeRangeMs)
	memory := minMemoryKb + rand.Intn(memoryRangeKb)

	switch {
	case strings.Contains(code, markerCompilationError):
		return Result{
			Status:          model.StatusCompilationError,
			TestCasesPassed: 0,
			TotalTestCases:  total,
			ExecutionTimeMs: 0,
			MemoryUsedKb:    0,
		}
	case strings.Contains(code, markerTimeLimit):
		return Result{
			Status:          model.StatusTimeLimitExceeded,
			TestCasesPassed: total / 2,
			TotalTestCases:  total,
			ExecutionTimeMs: timeLimitMs,
			MemoryUsedKb:    memory,
		}
	case strings.Contains(code, markerMemoryLimit):
		return Result{
			Status:          model.StatusMemoryLimitExceeded,
			TestCasesPassed: total / 3,
			TotalTestCases:  total,
			ExecutionTimeMs: execTime,
			MemoryUsedKb:    memoryLimitKb,
		}
	case strings.Contains(code, markerRuntimeError):
		return Result{
			Status:          model.StatusRuntimeError,
			TestCasesPassed: total / 2,
			TotalTestCases:  total,
			ExecutionTimeMs: execTime,
			MemoryUsedKb:    memory,
		}
	case strings.Contains(code, markerWrongAnswer):
		return Result{
			Status:          model.StatusWrongAnswer,
			TestCasesPassed: int(float64(total) * 0.6),
			TotalTestCases:  total,
			ExecutionTimeMs: execTime,
			MemoryUsedKb:    memory,
		}
	}

	return Result{
		Status:          model.StatusAccepted,
		TestCasesPassed: total,
		TotalTestCases:  total,
		ExecutionTimeMs: execTime,
		MemoryUsedKb:    memory,
	}
}

// RunResult is the outcome of a non-persisting "run code" request.
type RunResult struct {
	Output          string `json:"output"`
	Error           string `json:"error,omitempty"`
	ExecutionTimeMs int    `json:"execution_time_ms"`
	MemoryUsedKb    int    `json:"memory_used_kb"`
}

// Run produces a per-test-case transcript without creating a submission.
// Empty code counts as a syntax error here, unlike Evaluate.
func Run(code, language string, testCases []model.TestCase) RunResult {
	if strings.TrimSpace(code) == "" || strings.Contains(code, markerCompilationError) {
		return RunResult{Error: "Syntax error detected"}
	}

	lines := make([]string, 0, len(testCases))
	for i, tc := range testCases {
		lines = append(lines, fmt.Sprintf("Test Case %d:\nInput: %s\nOutput: %s\nStatus: Passed",
			i+1, tc.Input, tc.ExpectedOutput))
	}

	return RunResult{
		Output:          strings.Join(lines, "\n\n"),
		ExecutionTimeMs: 10 + rand.Intn(100),
		MemoryUsedKb:    1000 + rand.Intn(10000),
	}
}
