package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error)
	StatsForUser(ctx context.Context, userID string) (*model.ProgressStats, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[model.SubmissionStatus]int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, problem_id, code, language, status,
	            execution_time_ms, memory_used_kb, test_cases_passed, total_test_cases)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.UserID, sub.ProblemID, sub.Code, sub.Language,
		sub.Status, sub.ExecutionTimeMs, sub.MemoryUsedKb, sub.TestCasesPassed, sub.TotalTestCases).
		Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

const submissionColumns = `id, user_id, problem_id, code, language, status,
	execution_time_ms, memory_used_kb, test_cases_passed, total_test_cases, created_at`

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	sub := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID, &sub.Code, &sub.Language, &sub.Status,
		&sub.ExecutionTimeMs, &sub.MemoryUsedKb, &sub.TestCasesPassed, &sub.TotalTestCases, &sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser count: %w", err)
	}

	query := `SELECT ` + submissionColumns + `
	          FROM submissions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.Code, &s.Language, &s.Status,
			&s.ExecutionTimeMs, &s.MemoryUsedKb, &s.TestCasesPassed, &s.TotalTestCases, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser rows.Err: %w", err)
	}
	return subs, total, nil
}

func (r *pgSubmissionRepository) StatsForUser(ctx context.Context, userID string) (*model.ProgressStats, error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE status = $2),
	                 COUNT(DISTINCT problem_id) FILTER (WHERE status = $2)
	          FROM submissions WHERE user_id = $1`
	stats := &model.ProgressStats{}
	err := r.db.QueryRowContext(ctx, query, userID, model.StatusAccepted).
		Scan(&stats.TotalSubmissions, &stats.AcceptedSubmissions, &stats.SolvedProblems)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.StatsForUser: %w", err)
	}
	return stats, nil
}

func (r *pgSubmissionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.Count: %w", err)
	}
	return n, nil
}

func (r *pgSubmissionRepository) CountByStatus(ctx context.Context) (map[model.SubmissionStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM submissions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountByStatus query: %w", err)
	}
	defer rows.Close()

	counts := map[model.SubmissionStatus]int{}
	for rows.Next() {
		var status model.SubmissionStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.CountByStatus scan: %w", err)
		}
		counts[status] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.CountByStatus rows.Err: %w", err)
	}
	return counts, nil
}
