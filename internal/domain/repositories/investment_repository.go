package repositories

import (
	"context"

	"github.com/google/uuid"
	"valora.backend/internal/domain/entities"
)

// InvestmentPlanRepository defines investment plan data operations
type InvestmentPlanRepository interface {
	// ListActive returns active plans ordered by minimum amount ascending
	ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error)
}

// InvestmentRepository defines investment data operations
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entities.Investment) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error)
}
