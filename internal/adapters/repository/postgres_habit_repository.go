package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (
            id, user_id, title, description, color, icon, sort_order,
            policy, current_streak, longest_streak,
            start_date, archived_at,
            version, deleted_at, created_at, updated_at
        ) VALUES (
            :id, :user_id, :title, :description, :color, :icon, :sort_order,
            :policy, :current_streak, :longest_streak,
            :start_date, :archived_at,
            1, NULL, :created_at, :updated_at
        )`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	h.Version = 1
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT * FROM habits WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &h, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `
        SELECT * FROM habits
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY sort_order ASC, created_at DESC`

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            title=$1, description=$2, color=$3, icon=$4, sort_order=$5,
            policy=$6, archived_at=$7,
            updated_at=NOW(), version = version + 1
        WHERE id=$8 AND version=$9 AND deleted_at IS NULL
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		h.Title, h.Description, h.Color, h.Icon, h.SortOrder,
		h.Policy, h.ArchivedAt,
		h.ID, h.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			existsQuery := `SELECT count(*) FROM habits WHERE id = $1`
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, h.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	h.Version = newVersion
	h.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	query := `
        UPDATE habits
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func (r *PostgresHabitRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `
        SELECT * FROM habits
        WHERE user_id = $1 AND updated_at > $2
        ORDER BY updated_at ASC`

	if err := r.db.SelectContext(ctx, &habits, query, userID, since); err != nil {
		return nil, fmt.Errorf("sync query error: %w", err)
	}

	return habits, nil
}

// UpdateStreaks writes recomputed counters without touching version: streaks
// are derived data and must not trip optimistic-lock checks on clients.
func (r *PostgresHabitRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := `
        UPDATE habits
        SET current_streak = $1, longest_streak = $2, updated_at = NOW()
        WHERE id = $3 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, current, longest, id)
	if err != nil {
		return fmt.Errorf("streak update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
