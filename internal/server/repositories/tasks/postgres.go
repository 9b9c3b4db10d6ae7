package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT id, text, completed FROM tasks
		WHERE user_id = $1
		ORDER BY seq DESC
		`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, task models.Task) (models.Task, error) {
	query := `INSERT INTO tasks (id, user_id, text, completed)
		VALUES ($1, $2, $3, $4)
		`

	if _, err := r.db.ExecContext(ctx, query, task.ID, userID, task.Text, task.Completed); err != nil {
		return models.Task{}, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (models.Task, error) {
	query := `UPDATE tasks
		SET text = COALESCE($3::text, text), completed = COALESCE($4::boolean, completed)
		WHERE user_id = $1 AND id = $2
		RETURNING id, text, completed
		`

	var text sql.NullString
	if patch.Text != nil {
		text = sql.NullString{String: *patch.Text, Valid: true}
	}
	var completed sql.NullBool
	if patch.Completed != nil {
		completed = sql.NullBool{Bool: *patch.Completed, Valid: true}
	}

	var t models.Task
	err := r.db.QueryRowContext(ctx, query, userID, id, text, completed).Scan(&t.ID, &t.Text, &t.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, common.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM tasks WHERE user_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM tasks WHERE user_id = $1 AND id = ANY($2)`

	res, err := r.db.ExecContext(ctx, query, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
