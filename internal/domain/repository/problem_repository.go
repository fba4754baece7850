package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, tx *sql.Tx, problem *model.Problem) error
	AddTestCases(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error
	FindByID(ctx context.Context, id string) (*model.Problem, error)
	FindBySlug(ctx context.Context, slug string) (*model.Problem, error)
	GetTestCases(ctx context.Context, problemID string) ([]model.TestCase, error)
	List(ctx context.Context, moduleID string) ([]model.ProblemSummary, error)
	ListAll(ctx context.Context) ([]model.ProblemSummary, error)
	Count(ctx context.Context) (int, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	query := `INSERT INTO problems (id, module_id, title, slug, difficulty, description, starter_code, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.ExecContext(ctx, query, p.ID, p.ModuleID, p.Title, p.Slug, p.Difficulty,
		p.Description, p.StarterCode, p.SortOrder)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("problem with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) AddTestCases(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error {
	if len(testCases) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO test_cases (id, problem_id, input, expected_output, sort_order) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.AddTestCases prepare: %w", err)
	}
	defer stmt.Close()

	for i, tc := range testCases {
		if _, err := stmt.ExecContext(ctx, tc.ID, problemID, tc.Input, tc.ExpectedOutput, i+1); err != nil {
			return fmt.Errorf("pgProblemRepository.AddTestCases exec for case %s: %w", tc.ID, err)
		}
	}
	return nil
}

const problemSelect = `
	SELECT p.id, p.module_id, p.title, p.slug, p.difficulty, p.description, p.starter_code,
	       p.sort_order, p.created_at, p.updated_at,
	       m.id, m.title, m.sort_order
	FROM problems p
	JOIN modules m ON p.module_id = m.id`

func (r *pgProblemRepository) scanProblem(row *sql.Row) (*model.Problem, error) {
	p := &model.Problem{Module: &model.ModuleRef{}}
	err := row.Scan(
		&p.ID, &p.ModuleID, &p.Title, &p.Slug, &p.Difficulty, &p.Description, &p.StarterCode,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
		&p.Module.ID, &p.Module.Title, &p.Module.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *pgProblemRepository) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	p, err := r.scanProblem(r.db.QueryRowContext(ctx, problemSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProblemRepository) FindBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	p, err := r.scanProblem(r.db.QueryRowContext(ctx, problemSelect+` WHERE p.slug = $1`, slug))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindBySlug: %w", err)
	}
	return p, nil
}

func (r *pgProblemRepository) GetTestCases(ctx context.Context, problemID string) ([]model.TestCase, error) {
	query := `SELECT id, problem_id, input, expected_output, sort_order
	          FROM test_cases WHERE problem_id = $1 ORDER BY sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCases query: %w", err)
	}
	defer rows.Close()

	var cases []model.TestCase
	for rows.Next() {
		var tc model.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.Input, &tc.ExpectedOutput, &tc.SortOrder); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.GetTestCases scan: %w", err)
		}
		cases = append(cases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCases rows.Err: %w", err)
	}
	return cases, nil
}

func (r *pgProblemRepository) List(ctx context.Context, moduleID string) ([]model.ProblemSummary, error) {
	query := `SELECT id, module_id, title, slug, difficulty, sort_order FROM problems`
	args := []interface{}{}
	if moduleID != "" {
		query += ` WHERE module_id = $1`
		args = append(args, moduleID)
	}
	query += ` ORDER BY module_id ASC, sort_order ASC`
	return r.queryProblemSummaries(ctx, query, args...)
}

func (r *pgProblemRepository) ListAll(ctx context.Context) ([]model.ProblemSummary, error) {
	return r.List(ctx, "")
}

func (r *pgProblemRepository) queryProblemSummaries(ctx context.Context, query string, args ...interface{}) ([]model.ProblemSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.queryProblemSummaries query: %w", err)
	}
	defer rows.Close()

	problems := []model.ProblemSummary{}
	for rows.Next() {
		var p model.ProblemSummary
		if err := rows.Scan(&p.ID, &p.ModuleID, &p.Title, &p.Slug, &p.Difficulty, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.queryProblemSummaries scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.queryProblemSummaries rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgProblemRepository.Count: %w", err)
	}
	return n, nil
}
