package http

import (
	"net/http"

	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

// GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if project.Name == "" {
		newErrorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.projects.Create(c.Request.Context(), &project)
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
