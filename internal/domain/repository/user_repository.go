package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"algolearn/internal/common"
	"algolearn/internal/domain/model"
	"algolearn/internal/domain/streak"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProfileUpdate struct {
	Name                *string
	PreferredLanguage   *string
	ExperienceLevel     *string
	OnboardingCompleted *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*model.User, error)
	List(ctx context.Context, limit, offset int, search string) ([]model.AdminUser, int, error)
	SetBlocked(ctx context.Context, id string, blocked bool, reason *string) error
	Delete(ctx context.Context, id string) error

	// ApplyStreak recomputes and persists the user's streak for an accepted
	// submission at time now, under a row lock so two concurrent accepted
	// submissions cannot double-increment. Returns the new streak value.
	ApplyStreak(ctx context.Context, id string, now time.Time) (int, error)

	Count(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, email, name, hashed_password, role, preferred_language, experience_level,
	streak, last_active_date, onboarding_completed, is_blocked, blocked_at, blocked_reason,
	created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.Role,
		&user.PreferredLanguage, &user.ExperienceLevel,
		&user.Streak, &user.LastActiveDate, &user.OnboardingCompleted,
		&user.IsBlocked, &user.BlockedAt, &user.BlockedReason,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, name, hashed_password, role, preferred_language, experience_level)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.HashedPassword,
		user.Role, user.PreferredLanguage, user.ExperienceLevel)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*model.User, error) {
	query := `UPDATE users SET
	            name = COALESCE($1, name),
	            preferred_language = COALESCE($2, preferred_language),
	            experience_level = COALESCE($3, experience_level),
	            onboarding_completed = COALESCE($4, onboarding_completed),
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5
	          RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query,
		upd.Name, upd.PreferredLanguage, upd.ExperienceLevel, upd.OnboardingCompleted, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context, limit, offset int, search string) ([]model.AdminUser, int, error) {
	args := []interface{}{}
	where := ""
	if search != "" {
		where = ` WHERE u.email ILIKE $1 OR u.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List count: %w", err)
	}

	query := `SELECT u.id, u.email, u.name, u.role, u.preferred_language, u.experience_level,
	                 u.streak, u.last_active_date, u.is_blocked, u.blocked_at, u.blocked_reason,
	                 u.created_at, u.updated_at,
	                 (SELECT COUNT(*) FROM submissions s WHERE s.user_id = u.id) AS submission_count
	          FROM users u` + where +
		fmt.Sprintf(` ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List query: %w", err)
	}
	defer rows.Close()

	users := []model.AdminUser{}
	for rows.Next() {
		var u model.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PreferredLanguage, &u.ExperienceLevel,
			&u.Streak, &u.LastActiveDate, &u.IsBlocked, &u.BlockedAt, &u.BlockedReason,
			&u.CreatedAt, &u.UpdatedAt, &u.SubmissionCount); err != nil {
			return nil, 0, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgUserRepository.List rows.Err: %w", err)
	}
	return users, total, nil
}

func (r *pgUserRepository) SetBlocked(ctx context.Context, id string, blocked bool, reason *string) error {
	var query string
	var args []interface{}
	if blocked {
		query = `UPDATE users SET is_blocked = TRUE, blocked_at = CURRENT_TIMESTAMP, blocked_reason = $1,
		           updated_at = CURRENT_TIMESTAMP WHERE id = $2`
		args = []interface{}{reason, id}
	} else {
		query = `UPDATE users SET is_blocked = FALSE, blocked_at = NULL, blocked_reason = NULL,
		           updated_at = CURRENT_TIMESTAMP WHERE id = $1`
		args = []interface{}{id}
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgUserRepository.SetBlocked: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) ApplyStreak(ctx context.Context, id string, now time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("pgUserRepository.ApplyStreak begin: %w", err)
	}
	defer tx.Rollback()

	var prev int
	var lastActive sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT streak, last_active_date FROM users WHERE id = $1 FOR UPDATE`, id).
		Scan(&prev, &lastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgUserRepository.ApplyStreak select: %w", err)
	}

	var lastPtr *time.Time
	if lastActive.Valid {
		lastPtr = &lastActive.Time
	}
	newStreak, newLastActive := streak.Update(lastPtr, prev, now)

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET streak = $1, last_active_date = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		newStreak, newLastActive, id)
	if err != nil {
		return 0, fmt.Errorf("pgUserRepository.ApplyStreak update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("pgUserRepository.ApplyStreak commit: %w", err)
	}
	return newStreak, nil
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return n, nil
}
