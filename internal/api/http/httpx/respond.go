// Package httpx converts service errors into the JSON error envelope
// {error, details?} shared by every handler.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/content/domain"
	"github.com/clubsite/site-api/internal/documents"
	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage"
)

// Error writes the status and envelope matching err and aborts the request.
func Error(c *gin.Context, log *slog.Logger, err error) {
	if ve, ok := domain.IsValidation(err); ok {
		details := gin.H{"field": ve.Field, "reason": ve.Reason}
		if ve.Index >= 0 {
			details["index"] = ve.Index
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": details})
		return
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
	case errors.Is(err, storage.ErrInvalidName):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid path", "details": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found", "details": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already exists", "details": err.Error()})
	default:
		msg := "internal error"
		switch {
		case errors.Is(err, storage.ErrUnavailable):
			msg = "storage unavailable"
		case errors.Is(err, documents.ErrMissing):
			msg = "document missing"
		}
		logging.FromContext(c.Request.Context(), log, c.FullPath()).Error(msg, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	}
}

// BadRequest reports a malformed request that never reached a service.
func BadRequest(c *gin.Context, msg string, details any) {
	body := gin.H{"error": msg}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// Success is the body returned by batch writes and deletes.
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
