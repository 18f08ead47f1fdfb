package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/auth"
	"github.com/clubsite/site-api/internal/auth/domain"
)

// Verifier validates a session token.
type Verifier interface {
	Verify(token string) (*domain.Claims, error)
}

// RequireAdmin rejects requests without a valid session cookie with 401.
func RequireAdmin(v Verifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyCookie(c, v, cookieName)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(auth.CtxAdminSubject, claims.Subject)
		c.Next()
	}
}

// AdminPageGate redirects requests for the admin UI to "/" unless the session
// cookie is valid.
func AdminPageGate(v Verifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyCookie(c, v, cookieName)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(auth.CtxAdminSubject, claims.Subject)
		c.Next()
	}
}

func verifyCookie(c *gin.Context, v Verifier, cookieName string) (*domain.Claims, bool) {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return nil, false
	}
	claims, err := v.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
