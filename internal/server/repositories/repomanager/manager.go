package repomanager

import (
	"context"
	"database/sql"

	"github.com/alexkarev/taskboard/internal/dbx"
	"github.com/alexkarev/taskboard/internal/server/repositories/projects"
	"github.com/alexkarev/taskboard/internal/server/repositories/tasks"
	"github.com/alexkarev/taskboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Projects(db dbx.DBTX) projects.Repository
}
