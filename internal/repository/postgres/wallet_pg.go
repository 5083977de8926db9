// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/util"

	"github.com/shopspring/decimal"
)

const walletColumns = `id, user_id, base_currency, cash_balance, created_at, updated_at`

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
// Methods receive their DBExecutor per call, so the repository holds no connection.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

// GetOrCreateWallet inserts an empty wallet unless the user already has one, then reads it back.
func (r *WalletRepository) GetOrCreateWallet(ctx context.Context, q repository.DBExecutor, userID int64, currency string) (*domain.Wallet, error) {
	wallet := domain.NewWallet(userID, currency)
	query := `INSERT INTO wallets (user_id, base_currency, cash_balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, wallet.UserID, wallet.BaseCurrency, wallet.CashBalance, wallet.CreatedAt, wallet.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to ensure wallet for user %d: %w", userID, err)
	}
	return r.GetWalletByUserID(ctx, q, userID)
}

// GetWalletByUserID retrieves the wallet owned by userID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if err := q.GetContext(ctx, &wallet, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by user ID %d: %w", userID, err)
	}
	return &wallet, nil
}

// GetWalletByUserIDForUpdate retrieves the wallet and holds a row lock on it
// until the surrounding transaction commits or rolls back.
func (r *WalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	if err := q.GetContext(ctx, &wallet, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet of user %d: %w", userID, err)
	}
	return &wallet, nil
}

// UpdateWalletBalance adds delta to the cash balance of a specific wallet using the provided DBExecutor.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET cash_balance = cash_balance + $1, updated_at = $2
              WHERE id = $3 AND cash_balance + $1 >= 0`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for ID %d: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		if delta.IsNegative() {
			return fmt.Errorf("wallet %d cannot be debited by %s: %w", walletID, delta.Neg().String(), util.ErrInsufficientFunds)
		}
		return fmt.Errorf("no rows affected when updating wallet balance for ID %d: %w", walletID, util.ErrWalletNotFound)
	}
	return nil
}

// DeleteWallet removes the wallet; holdings and transactions go with it through ON DELETE CASCADE.
func (r *WalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, walletID int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %d: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting wallet %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}
