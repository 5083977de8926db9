// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a wallet ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	TransactionTypeBuy     TransactionType = "BUY"
)

// Transaction is an immutable wallet ledger entry.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`                     // Primary key, BIGSERIAL in DB
	WalletID    int64           `db:"wallet_id" json:"-"`               // Owning wallet
	Type        TransactionType `db:"tx_type" json:"tx_type"`           // DEPOSIT or BUY
	AssetID     *string         `db:"asset_id" json:"asset_id"`         // Nil for deposits
	AssetSymbol *string         `db:"asset_symbol" json:"asset_symbol"` // Nil for deposits
	AssetName   *string         `db:"asset_name" json:"asset_name"`     // Nil for deposits
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`         // 0 for deposits
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`     // 1 for deposits, market price for buys
	TotalValue  decimal.Decimal `db:"total_value" json:"total_value"`   // Cash moved by the entry
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// NewDepositTransaction creates a DEPOSIT entry for amount.
func NewDepositTransaction(walletID int64, amount decimal.Decimal) *Transaction {
	return &Transaction{
		WalletID:   walletID,
		Type:       TransactionTypeDeposit,
		Quantity:   decimal.Zero,
		UnitPrice:  decimal.NewFromInt(1),
		TotalValue: amount,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewBuyTransaction creates a BUY entry of quantity units at unitPrice.
func NewBuyTransaction(walletID int64, assetID, symbol, name string, quantity, unitPrice, total decimal.Decimal) *Transaction {
	return &Transaction{
		WalletID:    walletID,
		Type:        TransactionTypeBuy,
		AssetID:     &assetID,
		AssetSymbol: &symbol,
		AssetName:   &name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalValue:  total,
		CreatedAt:   time.Now().UTC(),
	}
}
