package http

import (
	"net/http"
	"net/mail"

	"github.com/alexkarev/taskboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Position []string    `json:"position"`
	Team     []string    `json:"team"`
}

// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if req.Password == "" {
		newErrorResponse(c, http.StatusBadRequest, "password is required")
		return
	}

	user, err := h.users.Create(c.Request.Context(), &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Position: req.Position,
		Team:     req.Team,
	})
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		crudErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
