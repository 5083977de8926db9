// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/marketdata"
	"cryptofolio/internal/repository"
	"cryptofolio/internal/util"
	"cryptofolio/pkg/db"

	"github.com/shopspring/decimal"
)

// TransactionHistoryLimit caps how many ledger entries ListTransactions returns.
const TransactionHistoryLimit = 50

// WalletService defines the interface for wallet-related business logic.
// Every operation is keyed on the authenticated wallet owner and creates the
// wallet on first use.
type WalletService interface {
	Summary(ctx context.Context, userID int64) (*domain.WalletSummary, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.WalletSummary, error)
	Buy(ctx context.Context, userID int64, assetID string, amountUSD decimal.Decimal) (*domain.TradeReceipt, error)
	ListTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	walletRepo      repository.WalletRepository
	holdingRepo     repository.HoldingRepository
	transactionRepo repository.TransactionRepository
	quotes          marketdata.QuoteProvider
	beginTx         db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx        db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx      db.RollbackTxFunc // Injected dependency for rolling back transactions
	logger          *slog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	holdingRepo repository.HoldingRepository,
	transactionRepo repository.TransactionRepository,
	quotes marketdata.QuoteProvider,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) WalletService {
	if logger == nil {
		logger = slog.Default()
	}
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		holdingRepo:     holdingRepo,
		transactionRepo: transactionRepo,
		quotes:          quotes,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
	}
}

// Summary values the user's wallet at current market prices.
func (s *walletService) Summary(ctx context.Context, userID int64) (*domain.WalletSummary, error) {
	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, s.dbExecutor, userID, domain.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("summary: failed to ensure wallet for user %d: %w", userID, err)
	}
	summary, err := s.summarize(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return summary, nil
}

func (s *walletService) summarize(ctx context.Context, wallet *domain.Wallet) (*domain.WalletSummary, error) {
	holdings, err := s.holdingRepo.ListHoldingsByWalletID(ctx, s.dbExecutor, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings of wallet %d: %w", wallet.ID, err)
	}

	quotes := map[string]domain.Asset{}
	if len(holdings) > 0 {
		ids := make([]string, 0, len(holdings))
		for _, h := range holdings {
			ids = append(ids, h.AssetID)
		}
		quotes, err = s.quotes.GetAssetsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch quotes for wallet %d: %w", wallet.ID, err)
		}
	}

	valuation := ValuatePortfolio(holdings, quotes)
	cash := wallet.CashBalance
	total := valuation.CurrentBalance.Add(cash)
	previousTotal := valuation.PreviousBalance.Add(cash) // cash is assumed stable over the window

	return &domain.WalletSummary{
		Currency:         strings.ToUpper(wallet.BaseCurrency),
		CashBalance:      cash,
		HoldingsBalance:  valuation.CurrentBalance,
		TotalBalance:     total,
		BalanceChangePct: balanceChangePct(total, previousTotal),
		Portfolio:        valuation.Assets,
		LastUpdated:      time.Now().UTC(),
	}, nil
}

// Deposit adds simulated cash to the user's wallet.
func (s *walletService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.WalletSummary, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be greater than zero: %w", util.ErrInvalidAmount)
	}

	if _, err := s.walletRepo.GetOrCreateWallet(ctx, s.dbExecutor, userID, domain.DefaultCurrency); err != nil {
		return nil, fmt.Errorf("deposit: failed to ensure wallet for user %d: %w", userID, err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner) // Use injected function
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController) // Use injected function

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to lock wallet of user %d: %w", userID, err)
	}

	if err := s.walletRepo.UpdateWalletBalance(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, fmt.Errorf("deposit: failed to update wallet balance: %w", err)
	}

	transaction := domain.NewDepositTransaction(wallet.ID, amount)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("deposit: failed to create transaction: %w", err)
	}

	updatedWallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to re-fetch updated wallet %d: %w", wallet.ID, err)
	}

	if err := s.commitTx(txController); err != nil { // Use injected function
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	s.logger.Info("Deposit completed", "user_id", userID, "wallet_id", wallet.ID, "amount", amount.String())

	summary, err := s.summarize(ctx, updatedWallet)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	return summary, nil
}

// Buy spends amountUSD of cash on assetID at the current market price.
// The quote is fetched before the database transaction starts, so no row lock
// is held while waiting on the provider; funds are re-checked under the lock.
func (s *walletService) Buy(ctx context.Context, userID int64, assetID string, amountUSD decimal.Decimal) (*domain.TradeReceipt, error) {
	if !amountUSD.IsPositive() {
		return nil, fmt.Errorf("purchase amount must be greater than zero: %w", util.ErrInvalidAmount)
	}
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, fmt.Errorf("asset id is required: %w", util.ErrInvalidInput)
	}

	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, s.dbExecutor, userID, domain.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to ensure wallet for user %d: %w", userID, err)
	}
	if !wallet.CanAfford(amountUSD) {
		return nil, util.ErrInsufficientFunds
	}

	asset, err := s.quotes.GetAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to fetch quote for %s: %w", assetID, err)
	}
	price := asset.PriceUSD
	if !price.IsPositive() {
		return nil, fmt.Errorf("buy: received non-positive price %s for %s: %w", price.String(), assetID, util.ErrUpstreamData)
	}

	quantity := amountUSD.Div(price)
	symbol := strings.ToUpper(asset.Symbol)
	name := asset.Name
	if name == "" {
		name = assetID
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("buy: transaction controller does not implement DBExecutor")
	}

	locked, err := s.walletRepo.GetWalletByUserIDForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to lock wallet of user %d: %w", userID, err)
	}
	if !locked.CanAfford(amountUSD) {
		return nil, util.ErrInsufficientFunds
	}

	holding, err := s.holdingRepo.GetHoldingForUpdate(ctx, txExecutor, locked.ID, assetID)
	switch {
	case errors.Is(err, util.ErrNotFound):
		holding = domain.NewHolding(locked.ID, assetID, symbol, name)
		holding.ApplyBuy(quantity, amountUSD)
		if err := s.holdingRepo.CreateHolding(ctx, txExecutor, holding); err != nil {
			return nil, fmt.Errorf("buy: failed to create holding: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("buy: failed to get holding %s: %w", assetID, err)
	default:
		holding.ApplyBuy(quantity, amountUSD)
		if err := s.holdingRepo.UpdateHolding(ctx, txExecutor, holding); err != nil {
			return nil, fmt.Errorf("buy: failed to update holding: %w", err)
		}
	}

	if err := s.walletRepo.UpdateWalletBalance(ctx, txExecutor, locked.ID, amountUSD.Neg()); err != nil {
		return nil, fmt.Errorf("buy: failed to update wallet balance: %w", err)
	}

	transaction := domain.NewBuyTransaction(locked.ID, assetID, symbol, name, quantity, price, amountUSD)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("buy: failed to create transaction: %w", err)
	}

	updatedWallet, err := s.walletRepo.GetWalletByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to re-fetch updated wallet %d: %w", locked.ID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("buy: failed to commit transaction: %w", err)
	}

	s.logger.Info("Buy executed",
		"user_id", userID,
		"wallet_id", locked.ID,
		"asset_id", assetID,
		"quantity", quantity.String(),
		"price", price.String(),
		"spent", amountUSD.String(),
	)

	receipt := &domain.TradeReceipt{
		AssetID:     assetID,
		Symbol:      symbol,
		Name:        name,
		Quantity:    quantity,
		Price:       price,
		Spent:       amountUSD,
		CashBalance: updatedWallet.CashBalance,
		ExecutedAt:  transaction.CreatedAt,
	}

	// The trade is committed at this point; a failed valuation only leaves the total unknown.
	summary, err := s.summarize(ctx, updatedWallet)
	if err != nil {
		s.logger.Warn("Post-trade valuation failed", "user_id", userID, "error", err)
		return receipt, nil
	}
	receipt.TotalBalance = decimal.NewNullDecimal(summary.TotalBalance)
	return receipt, nil
}

// ListTransactions returns the most recent ledger entries of the user's wallet, newest first.
func (s *walletService) ListTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, s.dbExecutor, userID, domain.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("list transactions: failed to ensure wallet for user %d: %w", userID, err)
	}

	transactions, err := s.transactionRepo.ListTransactionsByWalletID(ctx, s.dbExecutor, wallet.ID, TransactionHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}
