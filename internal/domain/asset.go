// internal/domain/asset.go
package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is a live quote for a market asset as reported by the market data provider.
type Asset struct {
	ID                string          `json:"id"`
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	PriceUSD          decimal.Decimal `json:"priceUsd"`
	ChangePercent24Hr decimal.Decimal `json:"changePercent24Hr"`
	VolumeUSD24Hr     decimal.Decimal `json:"volumeUsd24Hr"`
}

// PricePoint is one sample of an asset's price history.
type PricePoint struct {
	Time     int64           `json:"time"` // Unix milliseconds
	PriceUSD decimal.Decimal `json:"priceUsd"`
}

const iconURLFormat = "https://assets.coincap.io/assets/icons/%s@2x.png"

// IconURL returns the icon reference for a ticker symbol, or nil when the symbol is empty.
func IconURL(symbol string) *string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil
	}
	url := fmt.Sprintf(iconURLFormat, strings.ToLower(symbol))
	return &url
}
