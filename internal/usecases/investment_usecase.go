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

// InvestmentUsecase handles investment plans and stakes
type InvestmentUsecase struct {
	planRepo       repositories.InvestmentPlanRepository
	investmentRepo repositories.InvestmentRepository
	userRepo       repositories.UserRepository
	txRepo         repositories.TransactionRepository
	balanceRepo    repositories.BalanceRepository
	notifier       notifications.Notifier
}

// NewInvestmentUsecase creates a new investment usecase
func NewInvestmentUsecase(
	planRepo repositories.InvestmentPlanRepository,
	investmentRepo repositories.InvestmentRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	balanceRepo repositories.BalanceRepository,
	notifier notifications.Notifier,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		planRepo:       planRepo,
		investmentRepo: investmentRepo,
		userRepo:       userRepo,
		txRepo:         txRepo,
		balanceRepo:    balanceRepo,
		notifier:       notifier,
	}
}

// ListPlans returns the active investment plans
func (u *InvestmentUsecase) ListPlans(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	return u.planRepo.ListActive(ctx)
}

// CreateInvestment stakes part of a user's balance into a plan. Plan
// terms are snapshotted onto the investment row.
func (u *InvestmentUsecase) CreateInvestment(ctx context.Context, userID uuid.UUID, input entities.CreateInvestmentInput) (*entities.Investment, error) {
	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid plan id")
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.BadRequest("amount must be a positive number")
	}

	plan, err := u.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, domainerrors.BadRequest("plan is no longer available")
	}
	if amount.LessThan(plan.MinAmount) || amount.GreaterThan(plan.MaxAmount) {
		return nil, domainerrors.BadRequest("amount is outside the plan limits")
	}

	balance, err := u.balanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.TotalBalance.LessThan(amount) {
		return nil, domainerrors.InsufficientFunds()
	}

	now := time.Now().UTC()
	investment := &entities.Investment{
		ID:            uuid.New(),
		UserID:        userID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		Amount:        amount,
		ROIPercentage: plan.ROIPercentage,
		Frequency:     plan.Frequency,
		Status:        entities.InvestmentStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.investmentRepo.Create(ctx, investment); err != nil {
		return nil, err
	}

	if err := u.balanceRepo.Apply(ctx, userID, repositories.BalanceDelta{
		Balance:           amount.Neg(),
		Invested:          amount,
		ActiveInvestments: 1,
	}); err != nil {
		return nil, err
	}

	if err := u.txRepo.Create(ctx, &entities.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        entities.TransactionTypeInvestment,
		Amount:      amount,
		Method:      "balance",
		Reference:   utils.GenerateTransactionReference(),
		Description: "investment in " + plan.Name,
		Status:      entities.TransactionStatusCompleted,
		CreatedAt:   now,
	}); err != nil {
		return nil, err
	}

	if user, err := u.userRepo.GetByID(ctx, userID); err == nil {
		if err := u.notifier.Send(ctx, notifications.TemplateInvestmentCreated, user.Email, map[string]string{
			"user_name": user.FirstName,
			"plan_name": plan.Name,
			"amount":    amount.StringFixed(2),
			"roi":       plan.ROIPercentage.String(),
		}); err != nil {
			logger.Warn(ctx, "investment notification failed", zap.Error(err))
		}
	}

	return investment, nil
}

// ListByUser returns a user's investments, newest first
func (u *InvestmentUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	return u.investmentRepo.GetByUserID(ctx, userID)
}
