package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexkarev/taskboard/internal/common"
	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/alexkarev/taskboard/internal/server/repositories/repomanager"
)

func newTaskService(t *testing.T) (*TaskService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		t.Fatalf("repomanager error: %v", err)
	}
	return NewTaskService(db, m), mock
}

func taskRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "due_date", "priority", "status", "is_archive", "created_at", "updated_at",
	}).AddRow("t-1", "Ship release", "cut the tag", now, "high", status, false, now, now)
}

func TestTaskUpdate_AppliesPatchInsideTransaction(t *testing.T) {
	s, mock := newTaskService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnRows(taskRow("todo"))
	mock.ExpectQuery(`UPDATE\s+tasks`).
		WithArgs("Ship release", "cut the tag", sqlmock.AnyArg(), "high", "done", false, "t-1").
		WillReturnRows(taskRow("done"))
	mock.ExpectCommit()

	status := models.StatusDone
	updated, err := s.Update(context.Background(), "t-1", &models.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestTaskUpdate_NotFoundRollsBack(t *testing.T) {
	s, mock := newTaskService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	title := "x"
	_, err := s.Update(context.Background(), "nope", &models.TaskPatch{Title: &title})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
