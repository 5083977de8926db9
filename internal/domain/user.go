// internal/domain/user.go
package domain

import "time"

// User represents a registered account owner.
// Registration and password handling live outside this service; only the
// fields needed to resolve a wallet owner are read here.
type User struct {
	ID        int64     `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Email     string    `db:"email" json:"email"`           // Unique login email
	FirstName string    `db:"first_name" json:"first_name"` // Given name
	LastName  string    `db:"last_name" json:"last_name"`   // Family name
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// Session is an opaque bearer token issued to a user at login.
type Session struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
