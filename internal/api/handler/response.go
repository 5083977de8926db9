// internal/api/handler/response.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"cryptofolio/internal/api/types"
	"cryptofolio/internal/util" // For custom errors
)

// DefaultTimeout bounds a single request, market data calls included.
const DefaultTimeout = 30 * time.Second

// Amounts go out as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Helper function to send JSON responses.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = "Amount must be greater than zero"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrSessionExpired):
		statusCode = http.StatusUnauthorized
		message = "Session expired, please login again"
	case util.IsError(err, util.ErrInvalidSession):
		statusCode = http.StatusUnauthorized
		message = "Invalid or expired session token"
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Not authenticated"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Not enough cash balance for this purchase. Deposit funds first."
	case util.IsError(err, util.ErrAssetNotFound):
		statusCode = http.StatusNotFound
		message = "Asset not found"
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrWalletNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		message = "Market data rate limit exceeded, try again later"
	case util.IsError(err, util.ErrUpstreamData):
		statusCode = http.StatusBadGateway
		message = "Market data provider returned invalid data"
	case util.IsError(err, util.ErrUpstreamUnreachable), util.IsError(err, util.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "Market data provider unavailable"
		logger.Warn("Market data provider failure", "error", err)
	case util.IsError(err, context.DeadlineExceeded):
		statusCode = http.StatusGatewayTimeout
		message = "Request timed out"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.ErrorResponse{Error: message})
}

// respondWithBadRequest sends a 400 with a fixed message.
func respondWithBadRequest(w http.ResponseWriter, logger *slog.Logger, message string) {
	respondWithJSON(w, logger, http.StatusBadRequest, types.ErrorResponse{Error: message})
}

// queryLimit parses an optional integer query parameter bounded to [lo, hi].
func queryLimit(r *http.Request, name string, def, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}
