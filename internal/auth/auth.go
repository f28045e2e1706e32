// Package auth implements the operator login: a static credential check that
// hands out opaque in-memory session tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"

	"github.com/adsretail/billdesk/internal/config"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrLoginDisabled      = errors.New("login_disabled")
)

var Module = fx.Module("auth",
	fx.Provide(New),
)

// Sessions validates operator credentials and tracks issued tokens.
type Sessions struct {
	username string
	password string

	mu     sync.RWMutex
	tokens map[string]struct{}
}

func New(cfg config.Config) *Sessions {
	return &Sessions{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		tokens:   make(map[string]struct{}),
	}
}

// Login checks the static credentials and issues a session token.
func (s *Sessions) Login(username, password string) (string, error) {
	if s.password == "" {
		return "", ErrLoginDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
	return token, nil
}

// Valid reports whether the token belongs to an active session.
func (s *Sessions) Valid(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// Logout revokes one session token.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
