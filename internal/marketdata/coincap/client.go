// internal/marketdata/coincap/client.go
package coincap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/marketdata"
	"cryptofolio/internal/util"
)

const (
	// DefaultBaseURL is the public CoinCap v2 endpoint.
	DefaultBaseURL = "https://api.coincap.io/v2"
	// DefaultTimeout bounds every request to the provider.
	DefaultTimeout = 20 * time.Second

	maxConcurrentFetches = 8
	maxErrorBody         = 512
)

// Config holds CoinCap client settings.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client implements marketdata.QuoteProvider against the CoinCap REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

var _ marketdata.QuoteProvider = (*Client)(nil)

// NewClient creates a CoinCap client. Zero config fields fall back to defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// envelope is CoinCap's {"data": ...} response wrapper.
type envelope[T any] struct {
	Data *T `json:"data"`
}

// GetTopAssets returns the first limit assets by market cap.
func (c *Client) GetTopAssets(ctx context.Context, limit int) ([]domain.Asset, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp envelope[[]domain.Asset]
	if err := c.get(ctx, "assets", params, &resp); err != nil {
		return nil, fmt.Errorf("coincap: top assets: %w", err)
	}
	if resp.Data == nil {
		return []domain.Asset{}, nil
	}
	return *resp.Data, nil
}

// GetAsset returns a single asset quote.
func (c *Client) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("coincap: asset id is empty: %w", util.ErrAssetNotFound)
	}

	var resp envelope[domain.Asset]
	if err := c.get(ctx, "assets/"+url.PathEscape(id), nil, &resp); err != nil {
		if errors.Is(err, errNotFoundStatus) {
			return nil, fmt.Errorf("coincap: asset '%s': %w", id, util.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("coincap: asset '%s': %w", id, err)
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return nil, fmt.Errorf("coincap: asset '%s': %w", id, util.ErrAssetNotFound)
	}
	return resp.Data, nil
}

// GetAssetsByIDs fetches distinct ids concurrently. Unknown ids are left out of
// the result; any other provider failure aborts the whole batch.
func (c *Client) GetAssetsByIDs(ctx context.Context, ids []string) (map[string]domain.Asset, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	quotes := make(map[string]domain.Asset, len(unique))
	if len(unique) == 0 {
		return quotes, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, id := range unique {
		id := id
		g.Go(func() error {
			asset, err := c.GetAsset(gctx, id)
			if err != nil {
				if errors.Is(err, util.ErrAssetNotFound) {
					c.logger.Warn("Quote unavailable, skipping asset", "asset_id", id)
					return nil
				}
				return err
			}
			mu.Lock()
			quotes[id] = *asset
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

// GetHistory returns daily prices between now-days and now.
func (c *Client) GetHistory(ctx context.Context, id string, days int) ([]domain.PricePoint, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("interval", "d1")
	params.Set("start", strconv.FormatInt(start.UnixMilli(), 10))
	params.Set("end", strconv.FormatInt(end.UnixMilli(), 10))

	var resp envelope[[]domain.PricePoint]
	if err := c.get(ctx, "assets/"+url.PathEscape(id)+"/history", params, &resp); err != nil {
		if errors.Is(err, errNotFoundStatus) {
			return nil, fmt.Errorf("coincap: history of '%s': %w", id, util.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("coincap: history of '%s': %w", id, err)
	}
	if resp.Data == nil {
		return []domain.PricePoint{}, nil
	}
	return *resp.Data, nil
}

// errNotFoundStatus marks an HTTP 404 so callers can decide whether it means an unknown asset.
var errNotFoundStatus = fmt.Errorf("%w: not found", util.ErrUpstream)

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dest any) error {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return util.ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return errNotFoundStatus
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("CoinCap request failed", "endpoint", endpoint, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d: %s", util.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", util.ErrUpstream, err)
	}
	return nil
}
