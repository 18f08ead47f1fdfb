package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.EqualValues(t, 10<<20, cfg.Server.MaxUploadBytes)
	assert.Equal(t, BackendFS, cfg.Storage.Backend)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "auth_token", cfg.Auth.CookieName)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.EqualValues(t, 4, cfg.Storage.Postgres.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Storage.Postgres.ConnectTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "site-data")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test ,")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("LOGIN_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendS3, cfg.Storage.Backend)
	assert.Equal(t, "site-data", cfg.Storage.S3.Bucket)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5, cfg.Auth.LoginBurst)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Storage: StorageConfig{Backend: BackendFS, DataRoot: "."},
			Auth:    AuthConfig{JWTSecret: "s", Password: "p", SessionTTL: time.Hour},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"missing secret":    func(c *Config) { c.Auth.JWTSecret = "" },
		"missing password":  func(c *Config) { c.Auth.Password = "" },
		"unknown backend":   func(c *Config) { c.Storage.Backend = "ftp" },
		"s3 without bucket": func(c *Config) { c.Storage.Backend = BackendS3 },
		"postgres no dsn":   func(c *Config) { c.Storage.Backend = BackendPostgres },
		"half s3 creds": func(c *Config) {
			c.Storage.Backend = BackendS3
			c.Storage.S3.Bucket = "b"
			c.Storage.S3.AccessKeyID = "id"
		},
		"zero ttl": func(c *Config) { c.Auth.SessionTTL = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
