package http

import (
	"net/http"

	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

// GET /api/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /api/tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if task.Title == "" {
		newErrorResponse(c, http.StatusBadRequest, "title is required")
		return
	}

	created, err := h.tasks.Create(c.Request.Context(), &task)
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
