// internal/repository/postgres/holding_pg.go
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

const holdingColumns = `id, wallet_id, asset_id, symbol, name, quantity, total_cost, avg_buy_price, updated_at`

// HoldingRepository implements repository.HoldingRepository for PostgreSQL.
type HoldingRepository struct{}

// NewHoldingRepository creates a new HoldingRepository.
func NewHoldingRepository() repository.HoldingRepository {
	return &HoldingRepository{}
}

// CreateHolding inserts a new holding using the provided DBExecutor.
func (r *HoldingRepository) CreateHolding(ctx context.Context, q repository.DBExecutor, holding *domain.Holding) error {
	query := `INSERT INTO wallet_holdings (wallet_id, asset_id, symbol, name, quantity, total_cost, avg_buy_price, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := q.QueryRowxContext(ctx, query,
		holding.WalletID,
		holding.AssetID,
		holding.Symbol,
		holding.Name,
		holding.Quantity,
		holding.TotalCost,
		holding.AvgBuyPrice,
		holding.UpdatedAt,
	).Scan(&holding.ID)
	if err != nil {
		return fmt.Errorf("failed to create holding %s for wallet %d: %w", holding.AssetID, holding.WalletID, err)
	}
	return nil
}

// GetHoldingForUpdate retrieves and row-locks the holding of assetID in walletID.
func (r *HoldingRepository) GetHoldingForUpdate(ctx context.Context, q repository.DBExecutor, walletID int64, assetID string) (*domain.Holding, error) {
	var holding domain.Holding
	query := `SELECT ` + holdingColumns + ` FROM wallet_holdings WHERE wallet_id = $1 AND asset_id = $2 FOR UPDATE`
	if err := q.GetContext(ctx, &holding, query, walletID, assetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get holding %s for wallet %d: %w", assetID, walletID, err)
	}
	return &holding, nil
}

// UpdateHolding writes back the aggregated position.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, q repository.DBExecutor, holding *domain.Holding) error {
	query := `UPDATE wallet_holdings
              SET symbol = $1, name = $2, quantity = $3, total_cost = $4, avg_buy_price = $5, updated_at = $6
              WHERE id = $7`
	result, err := q.ExecContext(ctx, query,
		holding.Symbol,
		holding.Name,
		holding.Quantity,
		holding.TotalCost,
		holding.AvgBuyPrice,
		holding.UpdatedAt,
		holding.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding %d: %w", holding.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating holding %d: %w", holding.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating holding %d: %w", holding.ID, util.ErrNotFound)
	}
	return nil
}

// ListHoldingsByWalletID returns every holding of a wallet ordered by asset id.
func (r *HoldingRepository) ListHoldingsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64) ([]domain.Holding, error) {
	holdings := []domain.Holding{}
	query := `SELECT ` + holdingColumns + ` FROM wallet_holdings WHERE wallet_id = $1 ORDER BY asset_id`
	if err := q.SelectContext(ctx, &holdings, query, walletID); err != nil {
		return nil, fmt.Errorf("failed to list holdings for wallet %d: %w", walletID, err)
	}
	return holdings, nil
}
