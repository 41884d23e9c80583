package services

import (
	"errors"
	"fmt"

	"github.com/ArowuTest/rsu-vesting/internal/models"
	"github.com/ArowuTest/rsu-vesting/pkg/jwt"
)

// ErrInvalidSession is returned for missing, expired or forged session tokens.
var ErrInvalidSession = errors.New("invalid session")

// SessionService issues and resolves calculator sessions.
type SessionService interface {
	Start() (*models.Session, error)
	Resolve(token string) (string, error)
}

type sessionService struct {
	tokens *jwt.SessionTokenService
}

// NewSessionService creates a new SessionService implementation
func NewSessionService(tokens *jwt.SessionTokenService) SessionService {
	return &sessionService{tokens: tokens}
}

func (s *sessionService) Start() (*models.Session, error) {
	id, token, expiresAt, err := s.tokens.Issue()
	if err != nil {
		return nil, err
	}
	return &models.Session{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) Resolve(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: token is required", ErrInvalidSession)
	}
	id, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return id, nil
}
