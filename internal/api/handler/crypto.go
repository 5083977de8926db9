// internal/api/handler/crypto.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"cryptofolio/internal/api/types"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/service"
	"cryptofolio/internal/util"
)

// Query parameter bounds.
const (
	defaultMoversLimit = 6
	maxMoversLimit     = 20
	defaultSearchLimit = 30
	maxSearchLimit     = 100
)

// CryptoHandler handles HTTP requests under /crypto.
type CryptoHandler struct {
	wallets   service.WalletService
	markets   service.MarketService
	dashboard service.DashboardService
	logger    *slog.Logger
}

// NewCryptoHandler creates a new CryptoHandler.
func NewCryptoHandler(wallets service.WalletService, markets service.MarketService, dashboard service.DashboardService, logger *slog.Logger) *CryptoHandler {
	return &CryptoHandler{
		wallets:   wallets,
		markets:   markets,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Dashboard handles GET /crypto/dashboard.
func (h *CryptoHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	dashboard, err := h.dashboard.Dashboard(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, dashboard)
}

// Portfolio handles GET /crypto/portfolio.
func (h *CryptoHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	summary, err := h.wallets.Summary(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, summary)
}

// Deposit handles POST /crypto/deposit.
func (h *CryptoHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	var req types.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithBadRequest(w, h.logger, "Invalid request body")
		return
	}

	// Basic validation
	if !req.Amount.IsPositive() {
		respondWithBadRequest(w, h.logger, "Deposit amount must be greater than zero")
		return
	}

	summary, err := h.wallets.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, summary)
}

// Buy handles POST /crypto/buy.
func (h *CryptoHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	var req types.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithBadRequest(w, h.logger, "Invalid request body")
		return
	}

	// Basic validation
	if strings.TrimSpace(req.AssetID) == "" {
		respondWithBadRequest(w, h.logger, "asset_id is required")
		return
	}
	if !req.AmountUSD.IsPositive() {
		respondWithBadRequest(w, h.logger, "Purchase amount must be greater than zero")
		return
	}

	receipt, err := h.wallets.Buy(r.Context(), userID, req.AssetID, req.AmountUSD)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, receipt)
}

// Transactions handles GET /crypto/transactions.
func (h *CryptoHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthorized)
		return
	}

	transactions, err := h.wallets.ListTransactions(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}

// MarketMovers handles GET /crypto/market-movers?limit=.
func (h *CryptoHandler) MarketMovers(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, "limit", defaultMoversLimit, 1, maxMoversLimit)
	if !ok {
		respondWithBadRequest(w, h.logger, "limit must be an integer between 1 and 20")
		return
	}

	movers, err := h.markets.TopMovers(r.Context(), limit)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, movers)
}

// Assets handles GET /crypto/assets?search=&limit=.
func (h *CryptoHandler) Assets(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, "limit", defaultSearchLimit, 1, maxSearchLimit)
	if !ok {
		respondWithBadRequest(w, h.logger, "limit must be an integer between 1 and 100")
		return
	}

	assets, err := h.markets.SearchAssets(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, assets)
}
