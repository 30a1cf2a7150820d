package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "u-1", 2*time.Hour))
	return req
}

func taskRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "due_date", "priority", "status", "is_archive", "created_at", "updated_at",
	}).AddRow("t-1", "Ship release", "cut the tag", now, "high", "todo", false, now, now)
}

func TestListTasks(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+tasks\s+ORDER\s+BY\s+created_at`).
		WillReturnRows(taskRow())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/tasks", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var tasks []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t-1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestListTasks_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestCreateTask(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")
	mock.ExpectQuery(`INSERT\s+INTO\s+tasks`).
		WillReturnRows(taskRow())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks",
		`{"title":"Ship release","description":"cut the tag"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateTask_MissingTitle(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/tasks", `{"description":"no title"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateTask_PatchInsideTransaction(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnRows(taskRow())
	mock.ExpectQuery(`UPDATE\s+tasks`).
		WillReturnRows(taskRow())
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPut, "/api/tasks/t-1", `{"status":"done"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/tasks/nope", ""))

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteTask(t *testing.T) {
	h, mock := newTestHandler(t)
	router := h.InitRoutes()

	expectGetUserByID(mock, "u-1")
	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodDelete, "/api/tasks/t-1", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
}
