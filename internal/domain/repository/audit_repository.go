package repository

import (
	"context"
	"database/sql"
	"fmt"

	"algolearn/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]model.AuditLog, error)
}

type pgAuditLogRepository struct {
	db *sql.DB
}

func NewPgAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &pgAuditLogRepository{db: db}
}

func (r *pgAuditLogRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	query := `INSERT INTO audit_logs (id, admin_id, action, target_type, target_id, details)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.AdminID, entry.Action,
		entry.TargetType, entry.TargetID, entry.Details)
	if err != nil {
		return fmt.Errorf("pgAuditLogRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAuditLogRepository) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	query := `SELECT id, admin_id, action, target_type, target_id, details, created_at
	          FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgAuditLogRepository.List query: %w", err)
	}
	defer rows.Close()

	entries := []model.AuditLog{}
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.TargetType, &e.TargetID, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgAuditLogRepository.List scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAuditLogRepository.List rows.Err: %w", err)
	}
	return entries, nil
}
