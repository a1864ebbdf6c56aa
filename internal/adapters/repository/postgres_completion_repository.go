package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Create(ctx context.Context, completion *domain.Completion) error {
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completions (
			id, habit_id, user_id,
			completion_date, notes,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :habit_id, :user_id,
			:completion_date, :notes,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, completion)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23503" {
				return errors.New("referenced habit or user does not exist")
			}
			// Unique (habit_id, completion_date) index: the day is already
			// marked done.
			if pqErr.Code == "23505" {
				return domain.ErrCompletionExists
			}
		}
		return err
	}
	return nil
}

func (r *PostgresCompletionRepository) GetByID(ctx context.Context, id string) (*domain.Completion, error) {
	var completion domain.Completion
	query := `SELECT * FROM completions WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &completion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, err
	}
	return &completion, nil
}

func (r *PostgresCompletionRepository) ListByHabitID(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM completions
		WHERE habit_id = $1
		  AND completion_date >= $2
		  AND completion_date <= $3
		  AND deleted_at IS NULL
		ORDER BY completion_date ASC`

	if err := r.db.SelectContext(ctx, &completions, query, habitID, from, to); err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) Update(ctx context.Context, completion *domain.Completion) error {
	query := `
		UPDATE completions
		SET notes = :notes,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic Lock check
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, completion)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, completion.ID)
		if !exists {
			return domain.ErrCompletionNotFound
		}
		return domain.ErrCompletionConflict
	}

	return nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := `
		UPDATE completions
		SET deleted_at = $1,
		    updated_at = $1,
		    version = version + 1
		WHERE id = $2
		  AND user_id = $3 -- Security Check
		  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM completions
		WHERE user_id = $1
		  AND updated_at > $2
		ORDER BY updated_at ASC`

	if err := r.db.SelectContext(ctx, &completions, query, userID, since); err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *PostgresCompletionRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM completions WHERE id = $1", id)
	return count > 0, err
}
