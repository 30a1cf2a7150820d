// Package projects provides persistence for project records.
package projects

import (
	"context"

	"github.com/alexkarev/taskboard/internal/server/models"
)

// Repository is the storage contract for projects.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
