package service

import (
	"context"
	"fmt"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/judge"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"
	"algolearn/internal/platform/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	userRepo       repository.UserRepository
	metrics        *metrics.Metrics

	// Artificial judge latency, presentation only. Zero in tests.
	submitDelay time.Duration
	runDelay    time.Duration

	now func() time.Time
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	submitDelay, runDelay time.Duration,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		userRepo:       userRepo,
		metrics:        m,
		submitDelay:    submitDelay,
		runDelay:       runDelay,
		now:            time.Now,
	}
}

type CreateSubmissionRequest struct {
	ProblemID string           `json:"problem_id" validate:"required"`
	Code      string           `json:"code" validate:"required"`
	Language  string           `json:"language"`
	TestCases []model.TestCase `json:"test_cases"`
}

// CreateSubmission runs the simulated judge and records the verdict. On an
// accepted verdict the user's streak is updated after the submission row has
// been committed; a streak failure is logged but never fails the submission.
func (s *SubmissionService) CreateSubmission(ctx context.Context, userID string, req CreateSubmissionRequest) (*model.Submission, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id: %w", common.ErrBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	problem, err := s.problemRepo.FindByID(ctx, req.ProblemID)
	if err != nil {
		return nil, common.Errorf("problem not found: %w", err)
	}

	if err := sleepCtx(ctx, s.submitDelay); err != nil {
		return nil, err
	}

	// The judge sees exactly the caller's test cases; an empty list falls
	// back to the judge's own default count, never to the stored cases.
	result := judge.Evaluate(req.Code, req.Language, req.TestCases)

	submission := &model.Submission{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProblemID:       problem.ID,
		Code:            req.Code,
		Language:        req.Language,
		Status:          result.Status,
		ExecutionTimeMs: result.ExecutionTimeMs,
		MemoryUsedKb:    result.MemoryUsedKb,
		TestCasesPassed: result.TestCasesPassed,
		TotalTestCases:  result.TotalTestCases,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, common.Errorf("failed to create submission: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(string(result.Status)).Inc()
	}

	if result.Status == model.StatusAccepted {
		newStreak, err := s.userRepo.ApplyStreak(ctx, userID, s.now())
		if err != nil {
			// The submission row is the user-visible artifact; losing a
			// streak increment is lower severity than losing it.
			log.WithError(err).WithField("user_id", userID).Warn("streak update failed after accepted submission")
			if s.metrics != nil {
				s.metrics.StreakUpdatesTotal.WithLabelValues("error").Inc()
			}
		} else {
			log.WithFields(log.Fields{"user_id": userID, "streak": newStreak}).Debug("streak updated")
			if s.metrics != nil {
				s.metrics.StreakUpdatesTotal.WithLabelValues("ok").Inc()
			}
		}
	}

	return submission, nil
}

type RunCodeRequest struct {
	Code      string           `json:"code" validate:"required"`
	Language  string           `json:"language"`
	TestCases []model.TestCase `json:"test_cases"`
}

// RunCode simulates execution without persisting anything.
func (s *SubmissionService) RunCode(ctx context.Context, req RunCodeRequest) (*judge.RunResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}
	if err := sleepCtx(ctx, s.runDelay); err != nil {
		return nil, err
	}
	result := judge.Run(req.Code, req.Language, req.TestCases)
	return &result, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.submissionRepo.FindByID(ctx, id)
}

func (s *SubmissionService) ListMySubmissions(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error) {
	return s.submissionRepo.ListByUser(ctx, userID, limit, offset)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
