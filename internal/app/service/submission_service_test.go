package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionFixture() (*SubmissionService, *fakeSubmissionRepo, *fakeProblemRepo, *fakeUserRepo) {
	subRepo := &fakeSubmissionRepo{}
	probRepo := newFakeProblemRepo()
	userRepo := newFakeUserRepo()

	probRepo.add(&model.Problem{ID: "prob-1", Title: "Two Sum", Slug: "two-sum"}, []model.TestCase{
		{Input: "1", ExpectedOutput: "1"},
		{Input: "2", ExpectedOutput: "4"},
	})
	userRepo.users["user-1"] = &model.User{ID: "user-1", Email: "dev@example.com", Streak: 0}

	svc := NewSubmissionService(subRepo, probRepo, userRepo, nil, 0, 0)
	return svc, subRepo, probRepo, userRepo
}

func TestCreateSubmissionAccepted(t *testing.T) {
	svc, subRepo, _, userRepo := newSubmissionFixture()

	sub, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "prob-1",
		Code:      "function solve() { return 1; }",
		Language:  "javascript",
		TestCases: []model.TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "2", ExpectedOutput: "4"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAccepted, sub.Status)
	assert.Equal(t, 2, sub.TestCasesPassed)
	assert.Equal(t, 2, sub.TotalTestCases)
	assert.NotEmpty(t, sub.ID)
	require.Len(t, subRepo.created, 1)

	assert.Equal(t, 1, userRepo.streakCalls)
	assert.Equal(t, 1, userRepo.users["user-1"].Streak)
}

func TestCreateSubmissionEmptyListUsesJudgeDefault(t *testing.T) {
	svc, _, probRepo, _ := newSubmissionFixture()

	// prob-1 has 2 stored cases, but the judge only ever sees the request's
	// list; with none supplied the verdict reports the default 5 cases.
	require.Len(t, probRepo.testCases["prob-1"], 2)

	sub, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "prob-1",
		Code:      "clean",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, sub.Status)
	assert.Equal(t, 5, sub.TotalTestCases)
	assert.Equal(t, 5, sub.TestCasesPassed)
}

func TestCreateSubmissionRejectedVerdictSkipsStreak(t *testing.T) {
	svc, subRepo, _, userRepo := newSubmissionFixture()

	sub, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "prob-1",
		Code:      "// wrong answer",
		Language:  "javascript",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusWrongAnswer, sub.Status)
	require.Len(t, subRepo.created, 1)
	assert.Equal(t, 0, userRepo.streakCalls)
	assert.Equal(t, 0, userRepo.users["user-1"].Streak)
}

func TestCreateSubmissionStreakFailureIsNonFatal(t *testing.T) {
	svc, subRepo, _, userRepo := newSubmissionFixture()
	userRepo.applyStreakErr = errors.New("deadlock detected")

	sub, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "prob-1",
		Code:      "clean",
		Language:  "javascript",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, sub.Status)
	require.Len(t, subRepo.created, 1)
	assert.Equal(t, 1, userRepo.streakCalls)
}

func TestCreateSubmissionUnknownProblem(t *testing.T) {
	svc, subRepo, _, _ := newSubmissionFixture()

	_, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "missing",
		Code:      "clean",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Empty(t, subRepo.created)
}

func TestCreateSubmissionValidation(t *testing.T) {
	svc, subRepo, _, _ := newSubmissionFixture()

	tests := []struct {
		name   string
		userID string
		req    CreateSubmissionRequest
		want   error
	}{
		{
			name:   "missing user id",
			userID: "",
			req:    CreateSubmissionRequest{ProblemID: "prob-1", Code: "x"},
			want:   common.ErrBadRequest,
		},
		{
			name:   "missing code",
			userID: "user-1",
			req:    CreateSubmissionRequest{ProblemID: "prob-1"},
			want:   common.ErrValidation,
		},
		{
			name:   "missing problem id",
			userID: "user-1",
			req:    CreateSubmissionRequest{Code: "x"},
			want:   common.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSubmission(context.Background(), tt.userID, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
	assert.Empty(t, subRepo.created)
}

func TestCreateSubmissionUsesInlineTestCases(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture()

	sub, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
		ProblemID: "prob-1",
		Code:      "clean",
		TestCases: []model.TestCase{
			{Input: "a", ExpectedOutput: "b"},
			{Input: "c", ExpectedOutput: "d"},
			{Input: "e", ExpectedOutput: "f"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.TotalTestCases)
}

func TestCreateSubmissionStreakProgression(t *testing.T) {
	svc, _, _, userRepo := newSubmissionFixture()

	base := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	days := []struct {
		at   time.Time
		want int
	}{
		{base, 1},
		{base.Add(24 * time.Hour), 2},
		{base.Add(26 * time.Hour), 2},  // same day again
		{base.Add(96 * time.Hour), 1},  // gap resets
		{base.Add(120 * time.Hour), 2}, // next day extends again
	}

	for _, step := range days {
		svc.now = func() time.Time { return step.at }
		_, err := svc.CreateSubmission(context.Background(), "user-1", CreateSubmissionRequest{
			ProblemID: "prob-1",
			Code:      "clean",
		})
		require.NoError(t, err)
		assert.Equal(t, step.want, userRepo.users["user-1"].Streak)
	}
}

func TestRunCode(t *testing.T) {
	svc, subRepo, _, _ := newSubmissionFixture()

	result, err := svc.RunCode(context.Background(), RunCodeRequest{
		Code: "clean",
		TestCases: []model.TestCase{
			{Input: "x", ExpectedOutput: "y"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Output, "Test Case 1:")
	assert.Empty(t, subRepo.created, "run must not persist a submission")

	result, err = svc.RunCode(context.Background(), RunCodeRequest{Code: "syntax error"})
	require.NoError(t, err)
	assert.Equal(t, "Syntax error detected", result.Error)

	_, err = svc.RunCode(context.Background(), RunCodeRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
}
