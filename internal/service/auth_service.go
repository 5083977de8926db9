// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/util"
)

// AuthService resolves bearer tokens to their owners.
type AuthService interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	dbExecutor  repository.DBExecutor
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	now         func() time.Time
	logger      *slog.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(dbExecutor repository.DBExecutor, sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		dbExecutor:  dbExecutor,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		now:         time.Now,
		logger:      logger,
	}
}

// Authenticate returns the user owning token. Expired sessions are removed.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, util.ErrUnauthorized
	}

	session, err := s.sessionRepo.GetSessionByToken(ctx, s.dbExecutor, token)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidSession
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if session.Expired(s.now().UTC()) {
		if err := s.sessionRepo.DeleteSession(ctx, s.dbExecutor, session.ID); err != nil {
			s.logger.Warn("Failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, util.ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, session.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, util.ErrInvalidSession
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}
