package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/domain/repositories"
	"valora.backend/pkg/logger"
	"valora.backend/pkg/utils"
)

// UserUsecase handles profile, balance and KYC administration
type UserUsecase struct {
	userRepo    repositories.UserRepository
	balanceRepo repositories.BalanceRepository
	txRepo      repositories.TransactionRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	balanceRepo repositories.BalanceRepository,
	txRepo repositories.TransactionRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		balanceRepo: balanceRepo,
		txRepo:      txRepo,
	}
}

// GetProfile returns a user by id
func (u *UserUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetBalance returns the user's balance rollup
func (u *UserUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.UserBalance, error) {
	return u.balanceRepo.GetByUserID(ctx, userID)
}

// ListTransactions returns the user's ledger entries, newest first
func (u *UserUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int, error) {
	params := utils.GetPaginationParams(page, limit)
	return u.txRepo.GetByUserID(ctx, userID, params.Limit, params.CalculateOffset())
}

// ListUsers returns all accounts, newest first
func (u *UserUsecase) ListUsers(ctx context.Context, page, limit int) ([]*entities.User, int, error) {
	params := utils.GetPaginationParams(page, limit)
	return u.userRepo.ListAll(ctx, params.Limit, params.CalculateOffset())
}

// ReviewKyc sets a user's identity verification status
func (u *UserUsecase) ReviewKyc(ctx context.Context, id uuid.UUID, status entities.KycStatus) (*entities.User, error) {
	switch status {
	case entities.KycStatusApproved, entities.KycStatusRejected, entities.KycStatusPending:
	default:
		return nil, domainerrors.BadRequest("invalid kyc status: " + string(status))
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateKycStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.KycStatus = status

	logger.Info(ctx, "kyc status updated",
		zap.String("user_id", id.String()),
		zap.String("status", string(status)))
	return user, nil
}
