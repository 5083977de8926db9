// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, first_name, last_name, created_at, updated_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// SessionRepository implements repository.SessionRepository for PostgreSQL.
type SessionRepository struct{}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository() repository.SessionRepository {
	return &SessionRepository{}
}

// GetSessionByToken retrieves the session owning a bearer token.
func (r *SessionRepository) GetSessionByToken(ctx context.Context, q repository.DBExecutor, token string) (*domain.Session, error) {
	var session domain.Session
	query := `SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = $1`
	if err := q.GetContext(ctx, &session, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session by ID.
func (r *SessionRepository) DeleteSession(ctx context.Context, q repository.DBExecutor, id int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}
	return nil
}
