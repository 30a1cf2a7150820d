package http

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
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

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			newErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error(c.Request.Context(), "registration failed", "email", req.Email, "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "User registered successfully. Please check your email to verify your account.",
	})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error(c.Request.Context(), "login failed", "email", req.Email, "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// GET /api/auth/verify-email?token=...
func (h *Handler) VerifyEmail(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		newErrorResponse(c, http.StatusBadRequest, "verification token is required")
		return
	}

	res, err := h.auth.VerifyEmail(c.Request.Context(), tokenString)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrVerificationTokenExpired):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrInvalidVerificationToken):
			newErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorNotFound):
			newErrorResponse(c, http.StatusNotFound, "user not found")
		default:
			h.logger.Error(c.Request.Context(), "email verification failed", "error", err)
			newErrorResponse(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": res.Success,
		"message": res.Message,
	})
}

// GET /api/auth/token/check
func (h *Handler) CheckToken(c *gin.Context) {
	status := h.auth.CheckTokenValidity(extractToken(c))

	resp := gin.H{"isValid": status.IsValid}
	if status.IsValid {
		resp["expiresAt"] = status.ExpiresAt
		resp["timeRemaining"] = int64(status.TimeRemaining.Seconds())
	}

	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/token/refresh
func (h *Handler) RefreshToken(c *gin.Context) {
	tokenString := extractToken(c)
	if tokenString == "" {
		newErrorResponse(c, http.StatusUnauthorized, "Access token required")
		return
	}

	res, err := h.auth.ResetTokenIfActive(c.Request.Context(), tokenString)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			newErrorResponse(c, http.StatusForbidden, "Invalid or expired token")
			return
		}
		h.logger.Error(c.Request.Context(), "token refresh failed", "error", err)
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
		return
	}

	if res.Refreshed {
		c.Header(common.NewTokenHeaderName, res.Token)
		h.setAuthCookie(c, res.Token)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   res.Token,
		"message": res.Message,
	})
}
