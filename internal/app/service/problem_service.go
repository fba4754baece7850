package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ProblemService struct {
	problemRepo repository.ProblemRepository
	db          *sql.DB // For transactions
}

func NewProblemService(problemRepo repository.ProblemRepository, db *sql.DB) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, db: db}
}

// GetProblem resolves by slug first, then by id, with its test cases and
// owning module.
func (s *ProblemService) GetProblem(ctx context.Context, slugOrID string) (*model.Problem, error) {
	problem, err := s.problemRepo.FindBySlug(ctx, slugOrID)
	if errors.Is(err, common.ErrNotFound) {
		problem, err = s.problemRepo.FindByID(ctx, slugOrID)
	}
	if err != nil {
		return nil, err
	}
	cases, err := s.problemRepo.GetTestCases(ctx, problem.ID)
	if err != nil {
		return nil, err
	}
	problem.TestCases = cases
	return problem, nil
}

func (s *ProblemService) ListProblems(ctx context.Context, moduleID string) ([]model.ProblemSummary, error) {
	return s.problemRepo.List(ctx, moduleID)
}

type CreateProblemRequest struct {
	ModuleID    string            `json:"module_id" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Difficulty  string            `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Description string            `json:"description" validate:"required"`
	StarterCode json.RawMessage   `json:"starter_code"`
	SortOrder   int               `json:"order"`
	TestCases   []model.TestCase  `json:"test_cases"`
}

func (s *ProblemService) CreateProblem(ctx context.Context, req CreateProblemRequest) (*model.Problem, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	problem := &model.Problem{
		ID:          uuid.NewString(),
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Difficulty:  model.ProblemDifficulty(req.Difficulty),
		Description: req.Description,
		StarterCode: req.StarterCode,
		SortOrder:   req.SortOrder,
	}
	for i := range req.TestCases {
		req.TestCases[i].ID = uuid.NewString()
		req.TestCases[i].ProblemID = problem.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.problemRepo.CreateProblem(ctx, tx, problem); err != nil {
		return nil, err
	}
	if err := s.problemRepo.AddTestCases(ctx, tx, problem.ID, req.TestCases); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	problem.TestCases = req.TestCases
	return problem, nil
}
