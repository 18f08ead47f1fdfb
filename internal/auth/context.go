package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxAdminSubject holds the username of a verified admin session.
	CtxAdminSubject = "admin_subject"
)

// AdminSubject returns the admin username set by the session middleware, or
// "" for anonymous requests.
func AdminSubject(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAdminSubject))
}
