package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openrecruit/ats-backend/internal/apperrors"
)

// respondServiceError maps engine error kinds onto HTTP status codes:
// NotFound -> 404, InvalidTransition/Duplicate -> 400, Conflict -> 409,
// anything else -> 500. Invalid-transition responses always carry the full
// allowed-next list so clients can self-correct without a second round trip.
func respondServiceError(c *gin.Context, err error) {
	var invalid *apperrors.InvalidTransitionError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            "Invalid status transition",
			"message":          invalid.Message,
			"current_status":   invalid.Current,
			"requested_status": invalid.Requested,
			"allowed_statuses": invalid.Allowed,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
