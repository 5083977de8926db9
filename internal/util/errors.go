// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnauthorized      = errors.New("not authenticated")
	ErrInvalidSession    = errors.New("invalid or expired session token")
	ErrSessionExpired    = errors.New("session expired, please login again")

	// Market data provider failures.
	ErrAssetNotFound       = errors.New("asset not found")
	ErrUpstreamUnreachable = errors.New("market data provider unreachable")
	ErrRateLimited         = errors.New("market data provider rate limit exceeded")
	ErrUpstream            = errors.New("market data provider error")
	ErrUpstreamData        = errors.New("market data provider returned invalid data")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
