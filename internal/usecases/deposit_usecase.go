package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/domain/repositories"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/internal/metrics"
	"valora.backend/pkg/logger"
	"valora.backend/pkg/utils"
)

// DepositWindow is how long a deposit request stays matchable
const DepositWindow = 24 * time.Hour

// RateSource provides USD exchange rates for supported currencies
type RateSource interface {
	GetRate(ctx context.Context, currency entities.Currency) (decimal.Decimal, error)
}

// CreateDepositInput represents input for starting a deposit
type CreateDepositInput struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// DepositUsecase handles deposit tracking business logic
type DepositUsecase struct {
	trackingRepo repositories.PaymentTrackingRepository
	requestRepo  repositories.PaymentRequestRepository
	walletRepo   repositories.CompanyWalletRepository
	userRepo     repositories.UserRepository
	txRepo       repositories.TransactionRepository
	balanceRepo  repositories.BalanceRepository
	rates        RateSource
	notifier     notifications.Notifier
	sweepLimit   int
}

// NewDepositUsecase creates a new deposit usecase
func NewDepositUsecase(
	trackingRepo repositories.PaymentTrackingRepository,
	requestRepo repositories.PaymentRequestRepository,
	walletRepo repositories.CompanyWalletRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	balanceRepo repositories.BalanceRepository,
	rates RateSource,
	notifier notifications.Notifier,
	sweepLimit int,
) *DepositUsecase {
	if sweepLimit <= 0 {
		sweepLimit = 50
	}
	return &DepositUsecase{
		trackingRepo: trackingRepo,
		requestRepo:  requestRepo,
		walletRepo:   walletRepo,
		userRepo:     userRepo,
		txRepo:       txRepo,
		balanceRepo:  balanceRepo,
		rates:        rates,
		notifier:     notifier,
		sweepLimit:   sweepLimit,
	}
}

// CreateDeposit converts a fiat amount to the currency's expected crypto
// amount and opens a tracked deposit against the company wallet.
func (u *DepositUsecase) CreateDeposit(ctx context.Context, userID uuid.UUID, input CreateDepositInput) (*entities.PaymentTracking, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.KycStatus != entities.KycStatusApproved {
		return nil, domainerrors.KycNotApproved()
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.BadRequest("amount must be a positive number")
	}

	currency := entities.Currency(input.Currency)
	if !currency.IsValid() {
		return nil, domainerrors.BadRequest("unsupported currency: " + input.Currency)
	}

	wallet, err := u.walletRepo.GetActiveByCurrency(ctx, currency)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.UnsupportedCurrency(string(currency))
		}
		return nil, err
	}

	rate, err := u.rates.GetRate(ctx, currency)
	if err != nil {
		return nil, err
	}

	cryptoAmount := amount.Div(rate).Round(currency.Precision())
	now := time.Now().UTC()
	expiresAt := now.Add(DepositWindow)

	request := &entities.PaymentRequest{
		ID:              uuid.New(),
		UserID:          userID,
		Currency:        currency,
		RequestedAmount: amount,
		CryptoAddress:   wallet.Address,
		ExpiresAt:       expiresAt,
		CreatedAt:       now,
	}
	if err := u.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	tracking := &entities.PaymentTracking{
		ID:               uuid.New(),
		UserID:           userID,
		PaymentRequestID: request.ID,
		CompanyWalletID:  wallet.ID,
		Currency:         currency,
		RequestedAmount:  amount,
		CryptoAmount:     cryptoAmount,
		CompanyAddress:   wallet.Address,
		UserReference:    utils.GenerateDepositReference(userID),
		Status:           entities.PaymentTrackingStatusPending,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.trackingRepo.Create(ctx, tracking); err != nil {
		return nil, err
	}

	logger.Info(ctx, "deposit opened",
		zap.String("tracking_id", tracking.ID.String()),
		zap.String("currency", string(currency)),
		zap.String("crypto_amount", cryptoAmount.String()))

	if err := u.notifier.Send(ctx, notifications.TemplateDepositRequested, user.Email, map[string]string{
		"user_name":     user.FirstName,
		"amount":        amount.StringFixed(2),
		"currency":      string(currency),
		"crypto_amount": cryptoAmount.String(),
		"address":       wallet.Address,
		"reference":     tracking.UserReference,
	}); err != nil {
		logger.Warn(ctx, "deposit requested notification failed", zap.Error(err))
	}

	return tracking, nil
}

// GetByID returns a tracked deposit
func (u *DepositUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentTracking, error) {
	return u.trackingRepo.GetByID(ctx, id)
}

// ListByUser returns a user's tracked deposits, newest first
func (u *DepositUsecase) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.PaymentTracking, int, error) {
	params := utils.GetPaginationParams(page, limit)
	return u.trackingRepo.GetByUserID(ctx, userID, params.Limit, params.CalculateOffset())
}

// ListAll returns all tracked deposits, newest first
func (u *DepositUsecase) ListAll(ctx context.Context, page, limit int) ([]*entities.PaymentTracking, int, error) {
	params := utils.GetPaginationParams(page, limit)
	return u.trackingRepo.ListAll(ctx, params.Limit, params.CalculateOffset())
}

// ManuallyConfirm marks a deposit confirmed with operator-supplied
// evidence. It overwrites any prior evidence and does not verify the
// hash on chain. Safe to repeat; the balance is credited once.
func (u *DepositUsecase) ManuallyConfirm(ctx context.Context, id uuid.UUID, txHash string, confirmations int) (*entities.PaymentTracking, error) {
	tracking, err := u.trackingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if confirmations < 0 {
		confirmations = 0
	}
	if err := u.trackingRepo.UpdateStatus(ctx, id, entities.PaymentTrackingStatusConfirmed, txHash, confirmations); err != nil {
		return nil, err
	}

	alreadyConfirmed := tracking.Status == entities.PaymentTrackingStatusConfirmed
	tracking.Status = entities.PaymentTrackingStatusConfirmed
	tracking.TxHash = null.StringFrom(txHash)
	tracking.Confirmations = null.IntFrom(confirmations)

	logger.Info(ctx, "deposit manually confirmed",
		zap.String("tracking_id", id.String()),
		zap.String("tx_hash", txHash),
		zap.Bool("already_confirmed", alreadyConfirmed))

	if !alreadyConfirmed {
		if err := settleConfirmedDeposit(ctx, u.userRepo, u.txRepo, u.balanceRepo, u.notifier, tracking); err != nil {
			return nil, err
		}
	}
	return tracking, nil
}

// ExpireStale sweeps pending deposits past their expiry window, in
// pages, and returns the number of records expired.
func (u *DepositUsecase) ExpireStale(ctx context.Context) (int, error) {
	expired := 0
	for {
		records, err := u.trackingRepo.GetExpiredPending(ctx, u.sweepLimit)
		if err != nil {
			return expired, err
		}
		if len(records) == 0 {
			return expired, nil
		}

		ids := make([]uuid.UUID, len(records))
		for i, r := range records {
			ids[i] = r.ID
		}
		if err := u.trackingRepo.ExpireRecords(ctx, ids); err != nil {
			return expired, err
		}
		expired += len(ids)
		metrics.DepositsExpired.Add(float64(len(ids)))

		logger.Info(ctx, "expired stale deposits", zap.Int("count", len(ids)))
		if len(records) < u.sweepLimit {
			return expired, nil
		}
	}
}

// settleConfirmedDeposit credits the user balance, writes the ledger
// entry and emits the confirmation email for a deposit that just
// reached confirmed. Called exactly once per deposit.
func settleConfirmedDeposit(
	ctx context.Context,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	balanceRepo repositories.BalanceRepository,
	notifier notifications.Notifier,
	tracking *entities.PaymentTracking,
) error {
	tx := &entities.Transaction{
		ID:          uuid.New(),
		UserID:      tracking.UserID,
		Type:        entities.TransactionTypeDeposit,
		Amount:      tracking.RequestedAmount,
		Method:      string(tracking.Currency),
		Reference:   utils.GenerateTransactionReference(),
		Description: "crypto deposit " + tracking.UserReference,
		Status:      entities.TransactionStatusCompleted,
		CreatedAt:   time.Now().UTC(),
	}
	if err := txRepo.Create(ctx, tx); err != nil {
		return err
	}

	if err := balanceRepo.Apply(ctx, tracking.UserID, repositories.BalanceDelta{
		Balance: tracking.RequestedAmount,
	}); err != nil {
		return err
	}

	user, err := userRepo.GetByID(ctx, tracking.UserID)
	if err != nil {
		logger.Warn(ctx, "confirmed deposit user lookup failed", zap.Error(err))
		return nil
	}
	if err := notifier.Send(ctx, notifications.TemplateDepositConfirmed, user.Email, map[string]string{
		"user_name": user.FirstName,
		"amount":    tracking.RequestedAmount.StringFixed(2),
		"currency":  string(tracking.Currency),
		"tx_hash":   tracking.TxHash.String,
		"reference": tracking.UserReference,
	}); err != nil {
		logger.Warn(ctx, "deposit confirmed notification failed", zap.Error(err))
	}
	return nil
}
