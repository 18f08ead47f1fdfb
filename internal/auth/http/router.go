package http

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/auth/middleware"
)

func (h *Handler) Register(rg gin.IRouter) {
	rg.POST("/login", h.limiter.Middleware(), h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/check-auth", h.CheckAuth)
}

// RequireAdmin returns the middleware guarding admin API routes.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return middleware.RequireAdmin(h.sessions, h.cookie.Name)
}

// AdminPageGate returns the middleware guarding the admin UI path.
func (h *Handler) AdminPageGate() gin.HandlerFunc {
	return middleware.AdminPageGate(h.sessions, h.cookie.Name)
}
