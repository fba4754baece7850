package repository

import (
	"context"
	"database/sql"
	"fmt"

	"algolearn/internal/domain/model"
)

type AppSettingsRepository interface {
	List(ctx context.Context) ([]model.AppSetting, error)
	// Upsert inserts or overwrites the setting for key.
	Upsert(ctx context.Context, key, value string) (*model.AppSetting, error)
}

type pgAppSettingsRepository struct {
	db *sql.DB
}

func NewPgAppSettingsRepository(db *sql.DB) AppSettingsRepository {
	return &pgAppSettingsRepository{db: db}
}

func (r *pgAppSettingsRepository) List(ctx context.Context) ([]model.AppSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM app_settings`)
	if err != nil {
		return nil, fmt.Errorf("pgAppSettingsRepository.List query: %w", err)
	}
	defer rows.Close()

	settings := []model.AppSetting{}
	for rows.Next() {
		var s model.AppSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgAppSettingsRepository.List scan: %w", err)
		}
		settings = append(settings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAppSettingsRepository.List rows.Err: %w", err)
	}
	return settings, nil
}

func (r *pgAppSettingsRepository) Upsert(ctx context.Context, key, value string) (*model.AppSetting, error) {
	query := `INSERT INTO app_settings (key, value)
	          VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET
	            value = EXCLUDED.value,
	            updated_at = CURRENT_TIMESTAMP
	          RETURNING key, value, updated_at`
	s := &model.AppSetting{}
	if err := r.db.QueryRowContext(ctx, query, key, value).Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("pgAppSettingsRepository.Upsert: %w", err)
	}
	return s, nil
}
