package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubsite/site-api/internal/auth/domain"
)

const issuer = "site-api"

// Options configures the single admin account and its sessions.
type Options struct {
	Username string
	// Password is compared in constant time when PasswordHash is empty.
	Password     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

// SessionService checks admin credentials and signs/verifies session tokens.
type SessionService struct {
	opt Options
	now func() time.Time
}

func NewSessionService(opt Options) (*SessionService, error) {
	if len(opt.Secret) == 0 {
		return nil, errors.New("session secret is empty")
	}
	if opt.Password == "" && opt.PasswordHash == "" {
		return nil, errors.New("admin password is not configured")
	}
	if opt.TTL <= 0 {
		opt.TTL = 8 * time.Hour
	}
	return &SessionService{opt: opt, now: time.Now}, nil
}

func (s *SessionService) TTL() time.Duration { return s.opt.TTL }

// Authenticate returns domain.ErrInvalidCredentials unless username and
// password match the configured account.
func (s *SessionService) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.opt.Username)) == 1

	var passOK bool
	if s.opt.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.opt.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.opt.Password)) == 1
	}

	if !userOK || !passOK {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Issue signs an HS256 session token for subject.
func (s *SessionService) Issue(subject string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.opt.TTL)
	claims := domain.Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opt.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Verify parses token and checks its signature, expiry and admin claim.
func (s *SessionService) Verify(token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	var claims domain.Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.opt.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || !claims.Admin {
		return nil, domain.ErrInvalidToken
	}
	return &claims, nil
}
