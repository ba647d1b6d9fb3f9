package handler

import (
	"errors"
	"log"
	"net/http"

	"cyber_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes. Anything unexpected is logged
// and reported with the generic failure message.
func respondError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint ID not found."})
	case errors.Is(err, service.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists!"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Data was changed by another request, please retry"})
	default:
		log.Printf("ERROR: %s: %v", failure, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}
