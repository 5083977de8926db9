// internal/service/market_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/marketdata"
	"cryptofolio/internal/util"
)

// MarketService exposes read-only market views.
type MarketService interface {
	TopMovers(ctx context.Context, limit int) ([]domain.MarketMover, error)
	SearchAssets(ctx context.Context, query string, limit int) ([]domain.MarketMover, error)
}

type marketService struct {
	quotes marketdata.QuoteProvider
	logger *slog.Logger
}

// NewMarketService creates a new instance of MarketService.
func NewMarketService(quotes marketdata.QuoteProvider, logger *slog.Logger) MarketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &marketService{quotes: quotes, logger: logger}
}

// TopMovers returns the limit assets with the highest 24h change among the
// top 2×limit assets by market cap.
func (s *marketService) TopMovers(ctx context.Context, limit int) ([]domain.MarketMover, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("movers limit must be positive: %w", util.ErrInvalidInput)
	}

	assets, err := s.quotes.GetTopAssets(ctx, limit*2)
	if err != nil {
		return nil, fmt.Errorf("top movers: %w", err)
	}

	movers := make([]domain.MarketMover, 0, len(assets))
	for _, a := range assets {
		movers = append(movers, toMarketMover(a))
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].Change24hPct.GreaterThan(movers[j].Change24hPct)
	})
	if len(movers) > limit {
		movers = movers[:limit]
	}
	return movers, nil
}

// SearchAssets returns the top limit assets, filtered by a case-insensitive
// substring match on name or symbol when query is non-empty.
func (s *marketService) SearchAssets(ctx context.Context, query string, limit int) ([]domain.MarketMover, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("search limit must be positive: %w", util.ErrInvalidInput)
	}

	assets, err := s.quotes.GetTopAssets(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]domain.MarketMover, 0, len(assets))
	for _, a := range assets {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.Name), needle) &&
			!strings.Contains(strings.ToLower(a.Symbol), needle) {
			continue
		}
		results = append(results, toMarketMover(a))
	}
	s.logger.Debug("Asset search", "query", needle, "fetched", len(assets), "matched", len(results))
	return results, nil
}

func toMarketMover(a domain.Asset) domain.MarketMover {
	symbol := strings.ToUpper(a.Symbol)
	return domain.MarketMover{
		ID:           a.ID,
		Name:         a.Name,
		Symbol:       symbol,
		Pair:         symbol + "/" + domain.DefaultCurrency,
		CurrentPrice: a.PriceUSD,
		Change24hPct: a.ChangePercent24Hr,
		Volume24h:    a.VolumeUSD24Hr,
		ImageURL:     domain.IconURL(symbol),
	}
}
