package services

import (
	"context"
	"database/sql"

	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
)

// TaskService implements the task collection operations.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs the task CRUD service.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// List returns all tasks.
func (s *TaskService) List(ctx context.Context) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).List(ctx)
}

// Get returns a single task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, id)
}

// Create adds a new task.
func (s *TaskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// Update applies a partial patch atomically inside one transaction.
func (s *TaskService) Update(ctx context.Context, id string, patch *models.TaskPatch) (*models.Task, error) {

	var updated *models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(task)

		updated, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a task by id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, id)
}
