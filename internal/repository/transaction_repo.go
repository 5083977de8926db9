// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"cryptofolio/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction appends a ledger entry using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// ListTransactionsByWalletID returns at most limit entries of a wallet, newest first.
	ListTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID int64, limit int) ([]domain.Transaction, error)
}
