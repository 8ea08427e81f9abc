package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/infrastructure/models"
)

// InvestmentPlanRepositoryImpl implements InvestmentPlanRepository
type InvestmentPlanRepositoryImpl struct {
	db *gorm.DB
}

func NewInvestmentPlanRepository(db *gorm.DB) *InvestmentPlanRepositoryImpl {
	return &InvestmentPlanRepositoryImpl{db: db}
}

func (r *InvestmentPlanRepositoryImpl) ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	var ms []models.InvestmentPlan
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_amount ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	plans := make([]*entities.InvestmentPlan, 0, len(ms))
	for _, m := range ms {
		model := m
		plans = append(plans, planToEntity(&model))
	}
	return plans, nil
}

func (r *InvestmentPlanRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error) {
	var m models.InvestmentPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return planToEntity(&m), nil
}

func planToEntity(m *models.InvestmentPlan) *entities.InvestmentPlan {
	return &entities.InvestmentPlan{
		ID:            m.ID,
		Name:          m.Name,
		ROIPercentage: parseAmount(m.ROIPercentage),
		Frequency:     m.Frequency,
		MinAmount:     parseAmount(m.MinAmount),
		MaxAmount:     parseAmount(m.MaxAmount),
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

// InvestmentRepositoryImpl implements InvestmentRepository
type InvestmentRepositoryImpl struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepositoryImpl {
	return &InvestmentRepositoryImpl{db: db}
}

func (r *InvestmentRepositoryImpl) Create(ctx context.Context, inv *entities.Investment) error {
	m := &models.Investment{
		ID:            inv.ID,
		UserID:        inv.UserID,
		PlanID:        inv.PlanID,
		PlanName:      inv.PlanName,
		Amount:        inv.Amount.String(),
		ROIPercentage: inv.ROIPercentage.String(),
		Frequency:     inv.Frequency,
		Status:        string(inv.Status),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *InvestmentRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	var ms []models.Investment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	investments := make([]*entities.Investment, 0, len(ms))
	for _, m := range ms {
		investments = append(investments, &entities.Investment{
			ID:            m.ID,
			UserID:        m.UserID,
			PlanID:        m.PlanID,
			PlanName:      m.PlanName,
			Amount:        parseAmount(m.Amount),
			ROIPercentage: parseAmount(m.ROIPercentage),
			Frequency:     m.Frequency,
			Status:        entities.InvestmentStatus(m.Status),
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
		})
	}
	return investments, nil
}
