// internal/marketdata/coincap/client_test.go
package coincap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio/internal/util"
)

const bitcoinJSON = `{"id":"bitcoin","rank":"1","symbol":"BTC","name":"Bitcoin","priceUsd":"64000.50","changePercent24Hr":"2.5","volumeUsd24Hr":"1000000","vwap24Hr":null}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIKey: "secret", Timeout: 2 * time.Second}, nil), server
}

func TestGetAsset(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/assets/bitcoin", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			fmt.Fprintf(w, `{"data":%s,"timestamp":1}`, bitcoinJSON)
		})

		asset, err := client.GetAsset(context.Background(), "bitcoin")
		require.NoError(t, err)
		assert.Equal(t, "BTC", asset.Symbol)
		assert.True(t, decimal.RequireFromString("64000.50").Equal(asset.PriceUSD))
		assert.True(t, decimal.RequireFromString("2.5").Equal(asset.ChangePercent24Hr))
	})

	t.Run("NotFoundStatus", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"nope not found"}`)
		})

		_, err := client.GetAsset(context.Background(), "nope")
		assert.ErrorIs(t, err, util.ErrAssetNotFound)
	})

	t.Run("NullData", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":null}`)
		})

		_, err := client.GetAsset(context.Background(), "ghost")
		assert.ErrorIs(t, err, util.ErrAssetNotFound)
	})

	t.Run("RateLimited", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.GetAsset(context.Background(), "bitcoin")
		assert.ErrorIs(t, err, util.ErrRateLimited)
	})

	t.Run("ServerError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "boom")
		})

		_, err := client.GetAsset(context.Background(), "bitcoin")
		assert.ErrorIs(t, err, util.ErrUpstream)
		assert.NotErrorIs(t, err, util.ErrAssetNotFound)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()

		client := NewClient(Config{BaseURL: baseURL, Timeout: time.Second}, nil)
		_, err := client.GetAsset(context.Background(), "bitcoin")
		assert.ErrorIs(t, err, util.ErrUpstreamUnreachable)
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)
		_, err := client.GetAsset(context.Background(), "bitcoin")
		assert.ErrorIs(t, err, util.ErrUpstreamUnreachable)
	})
}

func TestGetTopAssets(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		fmt.Fprintf(w, `{"data":[%s,{"id":"ethereum","symbol":"ETH","name":"Ethereum","priceUsd":"3000","changePercent24Hr":"-1.2","volumeUsd24Hr":null}]}`, bitcoinJSON)
	})

	assets, err := client.GetTopAssets(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "ethereum", assets[1].ID)
	assert.True(t, assets[1].VolumeUSD24Hr.IsZero())
}

func TestGetAssetsByIDs(t *testing.T) {
	t.Run("DeduplicatesAndSkipsUnknown", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			switch strings.TrimPrefix(r.URL.Path, "/assets/") {
			case "bitcoin":
				fmt.Fprintf(w, `{"data":%s}`, bitcoinJSON)
			case "ethereum":
				fmt.Fprint(w, `{"data":{"id":"ethereum","symbol":"ETH","name":"Ethereum","priceUsd":"3000","changePercent24Hr":"0"}}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})

		quotes, err := client.GetAssetsByIDs(context.Background(), []string{"bitcoin", "ethereum", "bitcoin", "delisted", ""})
		require.NoError(t, err)
		assert.Len(t, quotes, 2)
		assert.Contains(t, quotes, "bitcoin")
		assert.Contains(t, quotes, "ethereum")
		assert.NotContains(t, quotes, "delisted")
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Empty", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
		quotes, err := client.GetAssetsByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("UpstreamFailurePropagates", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		quotes, err := client.GetAssetsByIDs(context.Background(), []string{"bitcoin"})
		assert.ErrorIs(t, err, util.ErrRateLimited)
		assert.Nil(t, quotes)
	})
}

func TestGetHistory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/bitcoin/history", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "d1", q.Get("interval"))
		assert.NotEmpty(t, q.Get("start"))
		assert.NotEmpty(t, q.Get("end"))
		fmt.Fprint(w, `{"data":[{"priceUsd":"60000.1","time":1700000000000,"date":"2023-11-14T00:00:00.000Z"},{"priceUsd":"61000","time":1700086400000}]}`)
	})

	points, err := client.GetHistory(context.Background(), "bitcoin", 7)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1700000000000), points[0].Time)
	assert.True(t, decimal.RequireFromString("61000").Equal(points[1].PriceUSD))
}
