package handlers

import (
	"errors"
	"log"
	"net/http"

	"precatorio-backend/models"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP responses: validation and
// not-found/conflict errors carry enough detail to correct the request;
// storage and configuration errors are logged with context and surfaced as
// an opaque failure.
func respondError(c *gin.Context, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "one or more validation rules were violated",
				"details": ve.Violations,
			},
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": err.Error(),
			},
		})
	case errors.Is(err, models.ErrDuplicateTaxID), errors.Is(err, models.ErrDuplicateOrderNumber):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_KEY",
				"message": err.Error(),
			},
		})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "internal error",
			},
		})
	}
}

func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
