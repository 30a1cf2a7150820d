package services

import (
	"context"
	"database/sql"

	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
)

// UserService implements the user collection operations. Auth flows live in
// AuthService; this service only covers the CRUD surface.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs the user CRUD service.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// List returns the public projections of all users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Create adds a user directly, without the verification flow. Meant for
// admin-created accounts; the password is hashed at the repository.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created.Public(), nil
}

// Update applies a partial patch atomically: the row is loaded and saved
// inside one transaction so concurrent patches cannot interleave.
func (s *UserService) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {

	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(user)

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated.Public(), nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
