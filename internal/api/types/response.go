// internal/api/types/response.go
package types

import "github.com/shopspring/decimal"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DepositRequest represents the request body for POST /crypto/deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BuyRequest represents the request body for POST /crypto/buy.
type BuyRequest struct {
	AssetID   string          `json:"asset_id"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
