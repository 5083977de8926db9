// internal/marketdata/provider.go
package marketdata

import (
	"context"

	"cryptofolio/internal/domain"
)

// QuoteProvider is the market data capability the wallet core depends on.
//
// Implementations report failures with the util sentinels: ErrAssetNotFound
// for unknown ids, ErrUpstreamUnreachable when the provider cannot be reached,
// ErrRateLimited on HTTP 429 and ErrUpstream for any other error status.
type QuoteProvider interface {
	// GetTopAssets returns up to limit assets ordered by market capitalisation.
	GetTopAssets(ctx context.Context, limit int) ([]domain.Asset, error)
	// GetAsset returns the quote for a single asset id.
	GetAsset(ctx context.Context, id string) (*domain.Asset, error)
	// GetAssetsByIDs returns quotes keyed by asset id, silently omitting ids the provider does not know.
	GetAssetsByIDs(ctx context.Context, ids []string) (map[string]domain.Asset, error)
	// GetHistory returns daily price points for the last days days.
	GetHistory(ctx context.Context, id string, days int) ([]domain.PricePoint, error)
}
