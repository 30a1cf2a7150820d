package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
)

const taskColumns = `id, title, description, due_date, priority, status, is_archive, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.DueDate,
		&task.Priority,
		&task.Status,
		&task.IsArchive,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	return &task, nil
}

// Create inserts a new task. Zero priority/status fall back to the table
// defaults (high, todo).
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	priority := task.Priority
	if priority == "" {
		priority = models.PriorityHigh
	}
	status := task.Status
	if status == "" {
		status = models.StatusTodo
	}

	query := `INSERT INTO tasks (title, description, due_date, priority, status, is_archive)
	 VALUES ($1, $2, $3, $4, $5, $6)
	 RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, priority, status, task.IsArchive))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// GetByID returns the task with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// List returns all tasks ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tasks, nil
}

// Update persists the mutable fields of task.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `UPDATE tasks
	 SET title = $1, description = $2, due_date = $3, priority = $4, status = $5, is_archive = $6, updated_at = now()
	 WHERE id = $7
	 RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status, task.IsArchive, task.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

// Delete removes a task by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
