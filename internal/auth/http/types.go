package http

import (
	"log/slog"

	"github.com/clubsite/site-api/internal/auth/middleware"
	"github.com/clubsite/site-api/internal/auth/service"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name   string
	Secure bool
}

type Handler struct {
	sessions *service.SessionService
	limiter  *middleware.LoginLimiter
	cookie   CookieOptions
	log      *slog.Logger
}

func New(sessions *service.SessionService, limiter *middleware.LoginLimiter, cookie CookieOptions, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		limiter:  limiter,
		cookie:   cookie,
		log:      log,
	}
}
