package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type DailyChallengeRepository interface {
	// FindInRange returns the challenge whose date falls in [from, to),
	// or ErrNotFound.
	FindInRange(ctx context.Context, from, to time.Time) (*model.DailyChallenge, error)
	// Create inserts a challenge row. The unique index on challenge_date
	// surfaces as ErrConflict when another caller won the creation race.
	Create(ctx context.Context, dc *model.DailyChallenge) error
}

type pgDailyChallengeRepository struct {
	db *sql.DB
}

func NewPgDailyChallengeRepository(db *sql.DB) DailyChallengeRepository {
	return &pgDailyChallengeRepository{db: db}
}

func (r *pgDailyChallengeRepository) FindInRange(ctx context.Context, from, to time.Time) (*model.DailyChallenge, error) {
	query := `SELECT id, problem_id, challenge_date, created_at
	          FROM daily_challenges
	          WHERE challenge_date >= $1 AND challenge_date < $2
	          ORDER BY challenge_date ASC LIMIT 1`
	dc := &model.DailyChallenge{}
	err := r.db.QueryRowContext(ctx, query, from, to).
		Scan(&dc.ID, &dc.ProblemID, &dc.Date, &dc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDailyChallengeRepository.FindInRange: %w", err)
	}
	return dc, nil
}

func (r *pgDailyChallengeRepository) Create(ctx context.Context, dc *model.DailyChallenge) error {
	query := `INSERT INTO daily_challenges (id, problem_id, challenge_date)
	          VALUES ($1, $2, $3)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, dc.ID, dc.ProblemID, dc.Date).Scan(&dc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("challenge already exists for this date: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgDailyChallengeRepository.Create: %w", err)
	}
	return nil
}
