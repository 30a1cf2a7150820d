// Package tasks provides persistence for task records.
package tasks

import (
	"context"

	"github.com/alexkarev/taskboard/internal/server/models"
)

// Repository is the storage contract for tasks.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
