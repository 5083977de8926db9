// internal/service/valuation.go
package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"cryptofolio/internal/domain"
)

var (
	hundred         = decimal.NewFromInt(100)
	minChangePct24h = decimal.NewFromInt(-100)
)

// Valuation is the result of pricing a set of holdings.
type Valuation struct {
	Assets          []domain.PortfolioAsset
	CurrentBalance  decimal.Decimal
	PreviousBalance decimal.Decimal // Value of the same quantities 24h ago
}

// ValuatePortfolio prices holdings with quotes keyed by asset id.
//
// Holdings without a quote are left out. A holding whose 24h change is -100%
// or lower counts towards the current balance only, since no previous price
// can be derived from it.
func ValuatePortfolio(holdings []domain.Holding, quotes map[string]domain.Asset) Valuation {
	v := Valuation{
		Assets:          make([]domain.PortfolioAsset, 0, len(holdings)),
		CurrentBalance:  decimal.Zero,
		PreviousBalance: decimal.Zero,
	}

	for _, holding := range holdings {
		quote, ok := quotes[holding.AssetID]
		if !ok {
			continue
		}

		price := quote.PriceUSD
		changePct := quote.ChangePercent24Hr
		value := price.Mul(holding.Quantity)
		v.CurrentBalance = v.CurrentBalance.Add(value)

		if changePct.GreaterThan(minChangePct24h) {
			previousPrice := price.Div(decimal.NewFromInt(1).Add(changePct.Div(hundred)))
			v.PreviousBalance = v.PreviousBalance.Add(previousPrice.Mul(holding.Quantity))
		}

		name := quote.Name
		if name == "" {
			name = holding.Name
		}
		symbol := strings.ToUpper(quote.Symbol)
		if symbol == "" {
			symbol = holding.Symbol
		}

		v.Assets = append(v.Assets, domain.PortfolioAsset{
			ID:           holding.AssetID,
			Name:         name,
			Symbol:       symbol,
			Quantity:     holding.Quantity,
			CurrentPrice: price,
			Value:        value,
			Change24hPct: changePct,
			ImageURL:     domain.IconURL(symbol),
		})
	}

	return v
}

// balanceChangePct returns the relative change between previous and current in percent,
// or zero when there is no positive previous balance to compare against.
func balanceChangePct(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Div(previous).Sub(decimal.NewFromInt(1)).Mul(hundred)
}
