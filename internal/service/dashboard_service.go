// internal/service/dashboard_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/marketdata"

	"golang.org/x/sync/errgroup"
)

// Dashboard defaults.
const (
	DefaultChartAssetID = "bitcoin"
	DefaultChartDays    = 7
	DefaultMoversLimit  = 6
)

// DashboardConfig selects the market context shown next to the wallet.
type DashboardConfig struct {
	ChartAssetID string `yaml:"chart_asset_id"`
	ChartDays    int    `yaml:"chart_days"`
	MoversLimit  int    `yaml:"movers_limit"`
}

// DashboardService assembles the home screen of a user.
type DashboardService interface {
	Dashboard(ctx context.Context, userID int64) (*domain.Dashboard, error)
}

type dashboardService struct {
	wallets WalletService
	markets MarketService
	quotes  marketdata.QuoteProvider
	cfg     DashboardConfig
	logger  *slog.Logger
}

// NewDashboardService creates a new instance of DashboardService.
// Zero values in cfg fall back to the package defaults.
func NewDashboardService(wallets WalletService, markets MarketService, quotes marketdata.QuoteProvider, cfg DashboardConfig, logger *slog.Logger) DashboardService {
	if cfg.ChartAssetID == "" {
		cfg.ChartAssetID = DefaultChartAssetID
	}
	if cfg.ChartDays <= 0 {
		cfg.ChartDays = DefaultChartDays
	}
	if cfg.MoversLimit <= 0 {
		cfg.MoversLimit = DefaultMoversLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &dashboardService{
		wallets: wallets,
		markets: markets,
		quotes:  quotes,
		cfg:     cfg,
		logger:  logger,
	}
}

// Dashboard fetches the wallet summary, the price chart and the market movers
// concurrently. Any failure fails the whole dashboard.
func (s *dashboardService) Dashboard(ctx context.Context, userID int64) (*domain.Dashboard, error) {
	var (
		summary *domain.WalletSummary
		history []domain.PricePoint
		movers  []domain.MarketMover
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.wallets.Summary(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.quotes.GetHistory(gctx, s.cfg.ChartAssetID, s.cfg.ChartDays)
		if err != nil {
			return fmt.Errorf("chart %s: %w", s.cfg.ChartAssetID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movers, err = s.markets.TopMovers(gctx, s.cfg.MoversLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("Dashboard assembly failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	chart := make([]domain.ChartPoint, 0, len(history))
	for _, p := range history {
		chart = append(chart, domain.ChartPoint{Timestamp: p.Time, Price: p.PriceUSD})
	}

	return &domain.Dashboard{
		Currency:         summary.Currency,
		PortfolioBalance: summary.TotalBalance,
		HoldingsBalance:  summary.HoldingsBalance,
		CashBalance:      summary.CashBalance,
		BalanceChangePct: summary.BalanceChangePct,
		Chart:            chart,
		MarketMovers:     movers,
		Portfolio:        summary.Portfolio,
		LastUpdated:      summary.LastUpdated,
	}, nil
}
