// internal/domain/portfolio.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioAsset is the valuation of one holding at current market prices.
type PortfolioAsset struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Value        decimal.Decimal `json:"value"`
	Change24hPct decimal.Decimal `json:"change_24h_pct"`
	ImageURL     *string         `json:"image_url"`
}

// WalletSummary is a point-in-time valuation of a wallet.
type WalletSummary struct {
	Currency         string           `json:"currency"`
	CashBalance      decimal.Decimal  `json:"cash_balance"`
	HoldingsBalance  decimal.Decimal  `json:"holdings_balance"`
	TotalBalance     decimal.Decimal  `json:"total_balance"`
	BalanceChangePct decimal.Decimal  `json:"balance_change_pct"`
	Portfolio        []PortfolioAsset `json:"portfolio"`
	LastUpdated      time.Time        `json:"last_updated"`
}

// TradeReceipt describes an executed buy.
// TotalBalance is null when the post-trade valuation could not be computed.
type TradeReceipt struct {
	AssetID      string              `json:"asset_id"`
	Symbol       string              `json:"symbol"`
	Name         string              `json:"name"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Price        decimal.Decimal     `json:"price"`
	Spent        decimal.Decimal     `json:"spent"`
	CashBalance  decimal.Decimal     `json:"cash_balance"`
	TotalBalance decimal.NullDecimal `json:"total_balance"`
	ExecutedAt   time.Time           `json:"executed_at"`
}

// MarketMover is the market view of an asset used by movers and search.
type MarketMover struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Pair         string          `json:"pair"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Change24hPct decimal.Decimal `json:"change_24h_pct"`
	Volume24h    decimal.Decimal `json:"volume_24h"`
	ImageURL     *string         `json:"image_url"`
}

// ChartPoint is one point of the dashboard price chart.
type ChartPoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// Dashboard composes a wallet valuation with market context.
type Dashboard struct {
	Currency         string           `json:"currency"`
	PortfolioBalance decimal.Decimal  `json:"portfolio_balance"`
	HoldingsBalance  decimal.Decimal  `json:"holdings_balance"`
	CashBalance      decimal.Decimal  `json:"cash_balance"`
	BalanceChangePct decimal.Decimal  `json:"balance_change_pct"`
	Chart            []ChartPoint     `json:"chart"`
	MarketMovers     []MarketMover    `json:"market_movers"`
	Portfolio        []PortfolioAsset `json:"portfolio"`
	LastUpdated      time.Time        `json:"last_updated"`
}
