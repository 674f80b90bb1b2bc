package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidPassword is returned when the submitted password does not match
// the configured admin secret.
var ErrInvalidPassword = errors.New("invalid password")

// Service handles admin authentication. There is a single shared admin
// identity; a successful login mints an opaque token held in the session
// store.
type Service struct {
	config *Config
	store  SessionStore
	logger Logger
}

// NewService creates a new auth service instance
func NewService(config *Config, store SessionStore, logger Logger) *Service {
	return &Service{
		config: config,
		store:  store,
		logger: logger,
	}
}

// Login validates the admin password and issues a fresh session token
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) != 1 {
		return "", ErrInvalidPassword
	}

	token := uuid.New().String()
	if err := s.store.Create(token, s.config.SessionTTL); err != nil {
		return "", s.logger.LogError(err, "failed to create session")
	}

	s.logger.LogInfo("Admin session created", nil)
	return token, nil
}

// Logout revokes the given session token
func (s *Service) Logout(token string) error {
	return s.store.Revoke(token)
}

// Validate reports whether the token identifies a live admin session
func (s *Service) Validate(token string) bool {
	return s.store.Valid(token)
}
