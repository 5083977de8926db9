// internal/domain/holding.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the aggregated position in one asset within a wallet.
// (WalletID, AssetID) is unique.
type Holding struct {
	ID          int64           `db:"id" json:"id"`
	WalletID    int64           `db:"wallet_id" json:"wallet_id"`
	AssetID     string          `db:"asset_id" json:"asset_id"` // Market data provider identifier, e.g. "bitcoin"
	Symbol      string          `db:"symbol" json:"symbol"`
	Name        string          `db:"name" json:"name"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	TotalCost   decimal.Decimal `db:"total_cost" json:"total_cost"`       // Cumulative cost basis in base currency
	AvgBuyPrice decimal.Decimal `db:"avg_buy_price" json:"avg_buy_price"` // TotalCost / Quantity, 0 when Quantity is 0
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewHolding creates an empty position for assetID in a wallet.
func NewHolding(walletID int64, assetID, symbol, name string) *Holding {
	return &Holding{
		WalletID:    walletID,
		AssetID:     assetID,
		Symbol:      symbol,
		Name:        name,
		Quantity:    decimal.Zero,
		TotalCost:   decimal.Zero,
		AvgBuyPrice: decimal.Zero,
		UpdatedAt:   time.Now().UTC(),
	}
}

// ApplyBuy adds a purchase of quantity units costing cost to the position
// and recomputes the average buy price.
func (h *Holding) ApplyBuy(quantity, cost decimal.Decimal) {
	h.Quantity = h.Quantity.Add(quantity)
	h.TotalCost = h.TotalCost.Add(cost)
	if h.Quantity.IsPositive() {
		h.AvgBuyPrice = h.TotalCost.Div(h.Quantity)
	} else {
		h.AvgBuyPrice = decimal.Zero
	}
	h.UpdatedAt = time.Now().UTC()
}
