package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
)

const projectColumns = `id, name, description, due_date, members, tasks, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX. Member and task
// id lists are stored as JSONB arrays.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func marshalStrings(in []string) (any, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project        models.Project
		description    sql.NullString
		dueDate        sql.NullTime
		members, tasks []byte
	)

	err := row.Scan(
		&project.ID,
		&project.Name,
		&description,
		&dueDate,
		&members,
		&tasks,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Description = description.String
	if dueDate.Valid {
		t := dueDate.Time
		project.DueDate = &t
	}
	if project.Members, err = unmarshalStrings(members); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if project.Tasks, err = unmarshalStrings(tasks); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &project, nil
}

// Create inserts a new project.
func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	members, err := marshalStrings(project.Members)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	tasks, err := marshalStrings(project.Tasks)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `INSERT INTO projects (name, description, due_date, members, tasks)
	 VALUES ($1, $2, $3, $4, $5)
	 RETURNING ` + projectColumns

	created, err := scanProject(r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.DueDate, members, tasks))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// GetByID returns the project with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

// List returns all projects ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return projects, nil
}

// Update persists the mutable fields of project.
func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {

	members, err := marshalStrings(project.Members)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	tasks, err := marshalStrings(project.Tasks)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `UPDATE projects
	 SET name = $1, description = $2, due_date = $3, members = $4, tasks = $5, updated_at = now()
	 WHERE id = $6
	 RETURNING ` + projectColumns

	updated, err := scanProject(r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.DueDate, members, tasks, project.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

// Delete removes a project by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
