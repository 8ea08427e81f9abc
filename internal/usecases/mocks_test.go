package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"valora.backend/internal/domain/entities"
	"valora.backend/internal/domain/repositories"
)

// Mock CompanyWalletRepository
type MockCompanyWalletRepository struct {
	mock.Mock
}

func (m *MockCompanyWalletRepository) ListActive(ctx context.Context) ([]*entities.CompanyWallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CompanyWallet), args.Error(1)
}

func (m *MockCompanyWalletRepository) GetActiveByCurrency(ctx context.Context, currency entities.Currency) (*entities.CompanyWallet, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanyWallet), args.Error(1)
}

func (m *MockCompanyWalletRepository) Upsert(ctx context.Context, currency entities.Currency, address, walletName string) (*entities.CompanyWallet, error) {
	args := m.Called(ctx, currency, address, walletName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanyWallet), args.Error(1)
}

// Mock PaymentTrackingRepository
type MockPaymentTrackingRepository struct {
	mock.Mock
}

func (m *MockPaymentTrackingRepository) Create(ctx context.Context, tracking *entities.PaymentTracking) error {
	args := m.Called(ctx, tracking)
	return args.Error(0)
}

func (m *MockPaymentTrackingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentTracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentTracking), args.Error(1)
}

func (m *MockPaymentTrackingRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.PaymentTracking, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentTracking), args.Int(1), args.Error(2)
}

func (m *MockPaymentTrackingRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.PaymentTracking, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentTracking), args.Int(1), args.Error(2)
}

func (m *MockPaymentTrackingRepository) ListOpenByAddress(ctx context.Context, address string) ([]*entities.PaymentTracking, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentTracking), args.Error(1)
}

func (m *MockPaymentTrackingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentTrackingStatus, txHash string, confirmations int) error {
	args := m.Called(ctx, id, status, txHash, confirmations)
	return args.Error(0)
}

func (m *MockPaymentTrackingRepository) GetExpiredPending(ctx context.Context, limit int) ([]*entities.PaymentTracking, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentTracking), args.Error(1)
}

func (m *MockPaymentTrackingRepository) ExpireRecords(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// Mock PaymentRequestRepository
type MockPaymentRequestRepository struct {
	mock.Mock
}

func (m *MockPaymentRequestRepository) Create(ctx context.Context, request *entities.PaymentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentRequest), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.User, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) UpdateKycStatus(ctx context.Context, id uuid.UUID, status entities.KycStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Int(1), args.Error(2)
}

// Mock BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockBalanceRepository) Apply(ctx context.Context, userID uuid.UUID, delta repositories.BalanceDelta) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

// Mock InvestmentPlanRepository
type MockInvestmentPlanRepository struct {
	mock.Mock
}

func (m *MockInvestmentPlanRepository) ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InvestmentPlan), args.Error(1)
}

func (m *MockInvestmentPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InvestmentPlan), args.Error(1)
}

// Mock InvestmentRepository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

// Mock WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *entities.WithdrawalRequest) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.WithdrawalRequest), args.Int(1), args.Error(2)
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, templateID, recipient string, params map[string]string) error {
	args := m.Called(ctx, templateID, recipient, params)
	return args.Error(0)
}

// Mock RateSource
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetRate(ctx context.Context, currency entities.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// fakeObserver serves scripted transactions to the reconciler
type fakeObserver struct {
	currency entities.Currency
	txs      []entities.ObservedTransaction
	err      error
}

func (f *fakeObserver) Currency() entities.Currency {
	return f.currency
}

func (f *fakeObserver) FetchInboundTransactions(context.Context, string) ([]entities.ObservedTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.txs, nil
}
