package service

import (
	"context"
	"fmt"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"

	"github.com/google/uuid"
)

type ProgressService struct {
	progressRepo   repository.ProgressRepository
	submissionRepo repository.SubmissionRepository
}

func NewProgressService(progressRepo repository.ProgressRepository, subRepo repository.SubmissionRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, submissionRepo: subRepo}
}

type ProgressResponse struct {
	Progress []model.UserProgress `json:"progress"`
	Stats    *model.ProgressStats `json:"stats"`
}

func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*ProgressResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id: %w", common.ErrBadRequest)
	}

	progress, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.submissionRepo.StatsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProgressResponse{Progress: progress, Stats: stats}, nil
}

type UpdateProgressRequest struct {
	ModuleID        string   `json:"module_id" validate:"required"`
	Completed       bool     `json:"completed"`
	CompletedTopics []string `json:"completed_topics"`
}

func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, req UpdateProgressRequest) (*model.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("missing user id: %w", common.ErrBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	progress := &model.UserProgress{
		ID:              uuid.NewString(),
		UserID:          userID,
		ModuleID:        req.ModuleID,
		Completed:       req.Completed,
		CompletedTopics: req.CompletedTopics,
	}
	return s.progressRepo.Upsert(ctx, progress)
}
