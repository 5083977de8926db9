// internal/repository/user_repo.go
package repository

import (
	"context"

	"cryptofolio/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
}

// SessionRepository resolves bearer tokens issued at login.
type SessionRepository interface {
	// GetSessionByToken retrieves the session for token.
	GetSessionByToken(ctx context.Context, q DBExecutor, token string) (*domain.Session, error)
	// DeleteSession removes a session, e.g. once it has expired.
	DeleteSession(ctx context.Context, q DBExecutor, id int64) error
}
