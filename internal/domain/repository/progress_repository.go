package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"algolearn/internal/domain/model"
)

type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.UserProgress, error)
	// Upsert writes the progress row keyed by (user_id, module_id) as a
	// single database-side upsert, so concurrent updates cannot interleave
	// a read-then-write.
	Upsert(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error)
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) ListByUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	query := `SELECT up.id, up.user_id, up.module_id, up.completed, up.completed_topics,
	                 up.created_at, up.updated_at,
	                 m.id, m.title, m.sort_order
	          FROM user_progress up
	          JOIN modules m ON up.module_id = m.id
	          WHERE up.user_id = $1
	          ORDER BY m.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	progress := []model.UserProgress{}
	for rows.Next() {
		var p model.UserProgress
		var topicsJSON []byte
		p.Module = &model.ModuleRef{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.ModuleID, &p.Completed, &topicsJSON,
			&p.CreatedAt, &p.UpdatedAt,
			&p.Module.ID, &p.Module.Title, &p.Module.SortOrder); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListByUser scan: %w", err)
		}
		if err := json.Unmarshal(topicsJSON, &p.CompletedTopics); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListByUser decode topics: %w", err)
		}
		progress = append(progress, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser rows.Err: %w", err)
	}
	return progress, nil
}

func (r *pgProgressRepository) Upsert(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error) {
	if p.CompletedTopics == nil {
		p.CompletedTopics = []string{}
	}
	topicsJSON, err := json.Marshal(p.CompletedTopics)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Upsert encode topics: %w", err)
	}

	query := `INSERT INTO user_progress (id, user_id, module_id, completed, completed_topics)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, module_id) DO UPDATE SET
	            completed = EXCLUDED.completed,
	            completed_topics = EXCLUDED.completed_topics,
	            updated_at = CURRENT_TIMESTAMP
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.ModuleID, p.Completed, topicsJSON).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Upsert: %w", err)
	}
	return p, nil
}
