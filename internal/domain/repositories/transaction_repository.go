package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"valora.backend/internal/domain/entities"
)

// TransactionRepository defines ledger entry data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error)
}

// BalanceDelta carries the increments applied to a user balance row
type BalanceDelta struct {
	Balance           decimal.Decimal
	Invested          decimal.Decimal
	Profit            decimal.Decimal
	Withdrawals       decimal.Decimal
	ActiveInvestments int
}

// BalanceRepository defines user balance rollup operations
type BalanceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserBalance, error)
	// Apply increments the balance row by the delta, creating it when absent
	Apply(ctx context.Context, userID uuid.UUID, delta BalanceDelta) error
}

// WithdrawalRepository defines withdrawal request data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entities.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.WithdrawalRequest, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus) error
}
