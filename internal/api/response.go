package api

import (
	"errors"
	"net/http"
	"strconv"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform envelope for every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(total int64, page, limit int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return &Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func respondList(c *gin.Context, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: newPagination(total, page, limit),
	})
}

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Success: false, Message: message})
}

// respondServiceError translates the service error vocabulary to HTTP.
// Unknown errors become opaque 500s so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderCompleted):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrSystemRole),
		errors.Is(err, service.ErrRoleInUse),
		errors.Is(err, service.ErrDuplicateExercise),
		errors.Is(err, service.ErrWorkoutAlreadyActive),
		errors.Is(err, service.ErrWorkoutEnded),
		errors.Is(err, service.ErrCategoryNotEmpty),
		errors.Is(err, service.ErrMatchAlreadyActive),
		errors.Is(err, service.ErrBootstrapDone):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		requestLogger(c).Error("unhandled service error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()))
		abortWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

// parsePagination reads ?page= and ?limit= with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
