package services

import (
	"context"
	"database/sql"

	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
)

// ProjectService implements the project collection operations.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProjectService constructs the project CRUD service.
func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx)
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repomanager.Projects(s.db).GetByID(ctx, id)
}

// Create adds a new project.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	return s.repomanager.Projects(s.db).Create(ctx, project)
}

// Update applies a partial patch atomically inside one transaction.
func (s *ProjectService) Update(ctx context.Context, id string, patch *models.ProjectPatch) (*models.Project, error) {

	var updated *models.Project

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		project, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(project)

		updated, err = repo.Update(ctx, project)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a project by id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Projects(s.db).Delete(ctx, id)
}
