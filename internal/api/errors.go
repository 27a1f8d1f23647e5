package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// ValidationResponse is the 400 body for field-level failures.
type ValidationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// RespondError maps the error taxonomy onto a status and JSON body.
// Unexpected errors are logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationResponse{Error: "validation failed", Fields: verr.FieldMap()})
	case errors.Is(err, types.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "invalid input"})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "not found"})
	case errors.Is(err, types.ErrConflict):
		c.JSON(http.StatusConflict, middleware.ErrorResponse{Error: "already exists"})
	case errors.Is(err, types.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "unauthorized"})
	default:
		middleware.Logger(c).ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "internal server error"})
	}
}

// ErrMalformedBody is reported when a body cannot be decoded at all.
var ErrMalformedBody = types.NewValidationError("body", "is malformed")

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, types.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}
