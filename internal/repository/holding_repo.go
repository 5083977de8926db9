// internal/repository/holding_repo.go
package repository

import (
	"context"

	"cryptofolio/internal/domain"
)

// HoldingRepository defines the interface for holding data operations.
type HoldingRepository interface {
	// CreateHolding inserts a new position and sets its ID.
	CreateHolding(ctx context.Context, q DBExecutor, holding *domain.Holding) error
	// GetHoldingForUpdate retrieves the (walletID, assetID) position and locks its row.
	GetHoldingForUpdate(ctx context.Context, q DBExecutor, walletID int64, assetID string) (*domain.Holding, error)
	// UpdateHolding persists quantity, cost basis and average price of an existing position.
	UpdateHolding(ctx context.Context, q DBExecutor, holding *domain.Holding) error
	// ListHoldingsByWalletID returns all positions of a wallet.
	ListHoldingsByWalletID(ctx context.Context, q DBExecutor, walletID int64) ([]domain.Holding, error)
}
