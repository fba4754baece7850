package judge

import (
	"strings"
	"testing"

	"algolearn/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourCases() []model.TestCase {
	return []model.TestCase{
		{Input: "1", ExpectedOutput: "1"},
		{Input: "2", ExpectedOutput: "4"},
		{Input: "3", ExpectedOutput: "9"},
		{Input: "4", ExpectedOutput: "16"},
	}
}

func TestEvaluateVerdicts(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus model.SubmissionStatus
		wantPassed int
	}{
		{
			name:       "clean code is accepted",
			code:       "function solve(n) { return n * n; }",
			wantStatus: model.StatusAccepted,
			wantPassed: 4,
		},
		{
			name:       "syntax error marker",
			code:       "function broken( { syntax error",
			wantStatus: model.StatusCompilationError,
			wantPassed: 0,
		},
		{
			name:       "infinite loop marker",
			code:       "while (true) {} // infinite loop",
			wantStatus: model.StatusTimeLimitExceeded,
			wantPassed: 2,
		},
		{
			name:       "memory leak marker",
			code:       "let leak = []; // memory leak",
			wantStatus: model.StatusMemoryLimitExceeded,
			wantPassed: 1,
		},
		{
			name:       "runtime error marker",
			code:       "null.foo // runtime error",
			wantStatus: model.StatusRuntimeError,
			wantPassed: 2,
		},
		{
			name:       "wrong answer marker",
			code:       "return 42 // wrong answer",
			wantStatus: model.StatusWrongAnswer,
			wantPassed: 2, // floor(4 * 0.6)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.code, "javascript", fourCases())
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantPassed, result.TestCasesPassed)
			assert.Equal(t, 4, result.TotalTestCases)
			assert.LessOrEqual(t, result.TestCasesPassed, result.TotalTestCases)
		})
	}
}

func TestEvaluateMarkerPriority(t *testing.T) {
	// When several markers are present, the earlier one in the checking
	// order wins.
	code := "syntax error infinite loop memory leak runtime error wrong answer"
	result := Evaluate(code, "javascript", fourCases())
	assert.Equal(t, model.StatusCompilationError, result.Status)

	code = "infinite loop wrong answer"
	result = Evaluate(code, "javascript", fourCases())
	assert.Equal(t, model.StatusTimeLimitExceeded, result.Status)
}

func TestEvaluateDefaultsToFiveCases(t *testing.T) {
	result := Evaluate("clean code", "javascript", nil)
	assert.Equal(t, model.StatusAccepted, result.Status)
	assert.Equal(t, 5, result.TotalTestCases)
	assert.Equal(t, 5, result.TestCasesPassed)
}

func TestEvaluatePinnedResources(t *testing.T) {
	ce := Evaluate("syntax error", "javascript", fourCases())
	assert.Equal(t, 0, ce.ExecutionTimeMs)
	assert.Equal(t, 0, ce.MemoryUsedKb)

	tle := Evaluate("infinite loop", "javascript", fourCases())
	assert.Equal(t, 5000, tle.ExecutionTimeMs)

	mle := Evaluate("memory leak", "javascript", fourCases())
	assert.Equal(t, 500000, mle.MemoryUsedKb)
}

func TestEvaluateStatusIsDeterministic(t *testing.T) {
	first := Evaluate("wrong answer here", "javascript", fourCases())
	for i := 0; i < 20; i++ {
		again := Evaluate("wrong answer here", "javascript", fourCases())
		assert.Equal(t, first.Status, again.Status)
		assert.Equal(t, first.TestCasesPassed, again.TestCasesPassed)
		assert.Equal(t, first.TotalTestCases, again.TotalTestCases)
	}
}

func TestRunTranscript(t *testing.T) {
	result := Run("console.log('hi')", "javascript", fourCases()[:2])
	require.Empty(t, result.Error)
	assert.True(t, strings.HasPrefix(result.Output, "Test Case 1:"))
	assert.Contains(t, result.Output, "Input: 1")
	assert.Contains(t, result.Output, "Test Case 2:")
	assert.Contains(t, result.Output, "Status: Passed")
	assert.Positive(t, result.ExecutionTimeMs)
	assert.Positive(t, result.MemoryUsedKb)
}

func TestRunRejectsBrokenCode(t *testing.T) {
	for _, code := range []string{"", "   ", "oops syntax error"} {
		result := Run(code, "javascript", fourCases())
		assert.Equal(t, "Syntax error detected", result.Error)
		assert.Empty(t, result.Output)
	}
}
