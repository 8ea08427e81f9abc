package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/domain/repositories"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/pkg/logger"
	"valora.backend/pkg/utils"
)

// WithdrawalUsecase handles payout requests
type WithdrawalUsecase struct {
	withdrawalRepo repositories.WithdrawalRepository
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	balanceRepo    repositories.BalanceRepository
	notifier       notifications.Notifier
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	withdrawalRepo repositories.WithdrawalRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	balanceRepo repositories.BalanceRepository,
	notifier notifications.Notifier,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		txRepo:         txRepo,
		balanceRepo:    balanceRepo,
		notifier:       notifier,
	}
}

// CreateWithdrawal opens a payout request against the user's balance.
// The balance is debited when an operator completes the request, not
// here.
func (u *WithdrawalUsecase) CreateWithdrawal(ctx context.Context, userID uuid.UUID, input entities.CreateWithdrawalInput) (*entities.WithdrawalRequest, error) {
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

	balance, err := u.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.TotalBalance.LessThan(amount) {
		return nil, domainerrors.InsufficientFunds()
	}

	withdrawal := &entities.WithdrawalRequest{
		ID:             uuid.New(),
		UserID:         userID,
		Amount:         amount,
		Method:         input.Method,
		AccountDetails: input.AccountDetails,
		Status:         entities.WithdrawalStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}

	if err := u.notifier.Send(ctx, notifications.TemplateWithdrawal, user.Email, map[string]string{
		"user_name": user.FirstName,
		"amount":    amount.StringFixed(2),
		"method":    input.Method,
	}); err != nil {
		logger.Warn(ctx, "withdrawal notification failed", zap.Error(err))
	}

	return withdrawal, nil
}

// ListByUser returns a user's withdrawal requests, newest first
func (u *WithdrawalUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error) {
	return u.withdrawalRepo.GetByUserID(ctx, userID)
}

// ListAll returns all withdrawal requests, newest first
func (u *WithdrawalUsecase) ListAll(ctx context.Context, page, limit int) ([]*entities.WithdrawalRequest, int, error) {
	params := utils.GetPaginationParams(page, limit)
	return u.withdrawalRepo.ListAll(ctx, params.Limit, params.CalculateOffset())
}

// Complete settles a pending withdrawal: the balance is debited and a
// ledger entry is written.
func (u *WithdrawalUsecase) Complete(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	withdrawal, err := u.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != entities.WithdrawalStatusPending {
		return nil, domainerrors.Conflict("withdrawal has already been processed")
	}

	if err := u.withdrawalRepo.UpdateStatus(ctx, id, entities.WithdrawalStatusCompleted); err != nil {
		return nil, err
	}

	if err := u.balanceRepo.Apply(ctx, withdrawal.UserID, repositories.BalanceDelta{
		Balance:     withdrawal.Amount.Neg(),
		Withdrawals: withdrawal.Amount,
	}); err != nil {
		return nil, err
	}

	if err := u.txRepo.Create(ctx, &entities.Transaction{
		ID:          uuid.New(),
		UserID:      withdrawal.UserID,
		Type:        entities.TransactionTypeWithdrawal,
		Amount:      withdrawal.Amount,
		Method:      withdrawal.Method,
		Reference:   utils.GenerateTransactionReference(),
		Status:      entities.TransactionStatusCompleted,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	withdrawal.Status = entities.WithdrawalStatusCompleted
	logger.Info(ctx, "withdrawal completed",
		zap.String("withdrawal_id", id.String()),
		zap.String("amount", withdrawal.Amount.String()))
	return withdrawal, nil
}

// Fail rejects a pending withdrawal without touching the balance
func (u *WithdrawalUsecase) Fail(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	withdrawal, err := u.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != entities.WithdrawalStatusPending {
		return nil, domainerrors.Conflict("withdrawal has already been processed")
	}

	if err := u.withdrawalRepo.UpdateStatus(ctx, id, entities.WithdrawalStatusFailed); err != nil {
		return nil, err
	}
	withdrawal.Status = entities.WithdrawalStatusFailed
	return withdrawal, nil
}
