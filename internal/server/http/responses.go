package http

import (
	"errors"
	"net/http"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

// crudErrorResponse maps service-layer sentinels to HTTP statuses for the
// CRUD endpoints.
func crudErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		newErrorResponse(c, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrDuplicateEmail):
		newErrorResponse(c, http.StatusConflict, err.Error())
	default:
		newErrorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
