package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsite/site-api/internal/auth/domain"
	"github.com/clubsite/site-api/internal/logging"
)

// Login checks the configured admin credentials and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	log := logging.FromContext(c.Request.Context(), h.log, "login")

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if err := h.sessions.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			log.Warn("login rejected", "client_ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed", "details": err.Error()})
		return
	}

	token, _, err := h.sessions.Issue(req.Username)
	if err != nil {
		log.Error("issue session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.setCookie(c, token, int(h.sessions.TTL().Seconds()))
	log.Info("admin logged in", "client_ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) CheckAuth(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err == nil {
		_, err = h.sessions.Verify(token)
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": err == nil})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
