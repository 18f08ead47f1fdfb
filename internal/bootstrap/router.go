package bootstrap

import (
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/clubsite/site-api/config"
	httpapi "github.com/clubsite/site-api/internal/api/http"
	"github.com/clubsite/site-api/internal/api/http/middleware"
	authhttp "github.com/clubsite/site-api/internal/auth/http"
	authmw "github.com/clubsite/site-api/internal/auth/middleware"
	authservice "github.com/clubsite/site-api/internal/auth/service"
	contenthttp "github.com/clubsite/site-api/internal/content/http"
	"github.com/clubsite/site-api/internal/content/service"
	"github.com/clubsite/site-api/internal/documents"
	"github.com/clubsite/site-api/internal/files"
	"github.com/clubsite/site-api/internal/logging"
	"github.com/clubsite/site-api/internal/storage"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Store       storage.Store
	Logger      *logging.Logger
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	cfg := dep.Config

	r := gin.New()
	r.RemoveExtraSlash = true
	r.Use(middleware.RequestIDMiddleware())
	r.Use(sloggin.NewWithConfig(dep.Logger.Component("http"), sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	sessions, err := authservice.NewSessionService(authservice.Options{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
		Secret:       []byte(cfg.Auth.JWTSecret),
		TTL:          cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, err
	}
	authHandler := authhttp.New(
		sessions,
		authmw.NewLoginLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		authhttp.CookieOptions{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure},
		dep.Logger.Component("auth"),
	)

	docs := documents.NewRepository(dep.Store, dep.Logger.Component("documents"))
	contentHandler := contenthttp.New(service.NewSite(docs, dep.Logger.Component("content")), dep.Logger.Component("content"))

	filesLog := dep.Logger.Component("files")
	filesHandler := files.NewHandler(files.NewService(dep.Store, filesLog), cfg.Server.MaxUploadBytes, filesLog)

	api := r.Group("/api")
	authHandler.Register(api)
	contentHandler.RegisterPublic(api)
	filesHandler.RegisterPublic(api)

	admin := api.Group("", authHandler.RequireAdmin(), authmw.AuditAdmin())
	contentHandler.RegisterAdmin(admin)
	filesHandler.RegisterAdmin(admin)

	filesHandler.RegisterDownload(r)

	if cfg.Server.WebRoot != "" {
		site := http.FileServer(gin.Dir(cfg.Server.WebRoot, false))
		serve := func(c *gin.Context) { site.ServeHTTP(c.Writer, c.Request) }

		gate := authHandler.AdminPageGate()
		adminPages := r.Group("/admin", gate)
		adminPages.GET("/*filepath", serve)

		// Paths like /./admin/ miss the route above but FileServer cleans them
		// into the admin tree, so the fallback applies the same gate.
		r.NoRoute(func(c *gin.Context) {
			if isAdminPath(c.Request.URL.Path) {
				gate(c)
				return
			}
			c.Next()
		}, func(c *gin.Context) {
			if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			serve(c)
		})
	} else {
		r.Any("/admin", authHandler.AdminPageGate(), func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "admin UI is not served by this instance"})
		})
	}

	return r, nil
}

func isAdminPath(p string) bool {
	p = path.Clean("/" + p)
	return p == "/admin" || strings.HasPrefix(p, "/admin/")
}
