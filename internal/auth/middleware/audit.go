package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/clubsite/site-api/internal/auth"
	"github.com/clubsite/site-api/internal/logging"
)

// AuditAdmin tags the access log line and every log written through
// logging.FromContext with the admin that made the request. It runs after
// RequireAdmin.
func AuditAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sub := auth.AdminSubject(c); sub != "" {
			sloggin.AddCustomAttributes(c, slog.String("admin", sub))
			c.Request = c.Request.WithContext(logging.WithAdmin(c.Request.Context(), sub))
		}
		c.Next()
	}
}
