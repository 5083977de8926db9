// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"cryptofolio/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// GetOrCreateWallet returns the user's wallet, creating an empty one in currency if absent.
	// It is idempotent under concurrent callers.
	GetOrCreateWallet(ctx context.Context, q DBExecutor, userID int64, currency string) (*domain.Wallet, error)
	// GetWalletByUserID retrieves the wallet owned by userID.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetWalletByUserIDForUpdate retrieves the wallet and locks its row until the surrounding transaction ends.
	GetWalletByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// UpdateWalletBalance adds delta (which may be negative) to the cash balance.
	// It fails with util.ErrInsufficientFunds rather than let the balance go below zero.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
	// DeleteWallet removes a wallet together with its holdings and transactions.
	DeleteWallet(ctx context.Context, q DBExecutor, walletID int64) error
}
