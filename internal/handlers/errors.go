package handlers

import (
	"errors"
	"net/http"

	"github.com/condovia/condovia-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps domain errors onto HTTP status codes. Unknown
// ids are 404, business-rule violations are 422, everything else is a
// store failure.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidSchedule),
		errors.Is(err, services.ErrAlreadyScheduled),
		errors.Is(err, services.ErrOverAllocation),
		errors.Is(err, services.ErrInvalidAllocation),
		errors.Is(err, services.ErrAlreadyAllocated),
		errors.Is(err, services.ErrInactiveEntity),
		errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
