// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// DefaultCurrency is the base currency of lazily created wallets.
const DefaultCurrency = "USD"

// Wallet represents a user's simulated cash account. Each user has at most one.
type Wallet struct {
	ID           int64           `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	UserID       int64           `db:"user_id" json:"user_id"`             // Foreign key to User, unique
	BaseCurrency string          `db:"base_currency" json:"base_currency"` // e.g., "USD"
	CashBalance  decimal.Decimal `db:"cash_balance" json:"cash_balance"`   // Never negative, NUMERIC(24, 8) in DB
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`       // Timestamp of creation
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`       // Timestamp of last update
}

// NewWallet creates a new Wallet instance with a zero cash balance.
func NewWallet(userID int64, currency string) *Wallet {
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Wallet{
		UserID:       userID,
		BaseCurrency: currency,
		CashBalance:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanAfford reports whether the cash balance covers amount.
func (w *Wallet) CanAfford(amount decimal.Decimal) bool {
	return w.CashBalance.GreaterThanOrEqual(amount)
}
