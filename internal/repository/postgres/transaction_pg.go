// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO wallet_transactions (wallet_id, tx_type, asset_id, asset_symbol, asset_name, quantity, unit_price, total_value, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	err := q.QueryRowxContext(ctx, query,
		transaction.WalletID,
		transaction.Type,
		transaction.AssetID,
		transaction.AssetSymbol,
		transaction.AssetName,
		transaction.Quantity,
		transaction.UnitPrice,
		transaction.TotalValue,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByWalletID retrieves the most recent transactions of a wallet, newest first.
func (r *TransactionRepository) ListTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, wallet_id, tx_type, asset_id, asset_symbol, asset_name, quantity, unit_price, total_value, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	if err := q.SelectContext(ctx, &transactions, query, walletID, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for wallet %d: %w", walletID, err)
	}
	return transactions, nil
}
