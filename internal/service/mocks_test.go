// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"cryptofolio/internal/domain"
	"cryptofolio/internal/repository"
	"cryptofolio/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

var _ repository.DBExecutor = (*MockDBExecutor)(nil)

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	m.Called(ctx, query, args)
	return &sqlx.Row{}
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetOrCreateWallet(ctx context.Context, q repository.DBExecutor, userID int64, currency string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, walletID int64) error {
	args := m.Called(ctx, q, walletID)
	return args.Error(0)
}

// MockHoldingRepository is a mock implementation of repository.HoldingRepository.
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) CreateHolding(ctx context.Context, q repository.DBExecutor, holding *domain.Holding) error {
	args := m.Called(ctx, q, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) GetHoldingForUpdate(ctx context.Context, q repository.DBExecutor, walletID int64, assetID string) (*domain.Holding, error) {
	args := m.Called(ctx, q, walletID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) UpdateHolding(ctx context.Context, q repository.DBExecutor, holding *domain.Holding) error {
	args := m.Called(ctx, q, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) ListHoldingsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64) ([]domain.Holding, error) {
	args := m.Called(ctx, q, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockQuoteProvider is a mock implementation of marketdata.QuoteProvider.
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) GetTopAssets(ctx context.Context, limit int) ([]domain.Asset, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockQuoteProvider) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockQuoteProvider) GetAssetsByIDs(ctx context.Context, ids []string) (map[string]domain.Asset, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Asset), args.Error(1)
}

func (m *MockQuoteProvider) GetHistory(ctx context.Context, id string, days int) ([]domain.PricePoint, error) {
	args := m.Called(ctx, id, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implements repository.DBExecutor by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// walletServiceMocks bundles the collaborators of a walletService under test.
type walletServiceMocks struct {
	wallets      *MockWalletRepository
	holdings     *MockHoldingRepository
	transactions *MockTransactionRepository
	quotes       *MockQuoteProvider
	tx           *MockTxController
	beginErr     error
}

func newWalletServiceMocks() *walletServiceMocks {
	return &walletServiceMocks{
		wallets:      new(MockWalletRepository),
		holdings:     new(MockHoldingRepository),
		transactions: new(MockTransactionRepository),
		quotes:       new(MockQuoteProvider),
		tx:           new(MockTxController),
	}
}

func (m *walletServiceMocks) service() WalletService {
	return NewWalletService(
		new(MockDBBeginner),
		new(MockDBExecutor),
		m.wallets,
		m.holdings,
		m.transactions,
		m.quotes,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			if m.beginErr != nil {
				return nil, m.beginErr
			}
			return m.tx, nil
		},
		func(tx db.TxController) error {
			return m.tx.Commit()
		},
		func(tx db.TxController) {
			_ = m.tx.Rollback()
		},
		nil,
	)
}

func (m *walletServiceMocks) assertExpectations(t mock.TestingT) {
	m.wallets.AssertExpectations(t)
	m.holdings.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
	m.quotes.AssertExpectations(t)
	m.tx.Mock.AssertExpectations(t)
}

// decEq matches a decimal argument by numeric value.
func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
