package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"valora.backend/internal/domain/entities"
	"valora.backend/internal/infrastructure/models"
)

// PaymentRequestRepositoryImpl implements PaymentRequestRepository
type PaymentRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) *PaymentRequestRepositoryImpl {
	return &PaymentRequestRepositoryImpl{db: db}
}

func (r *PaymentRequestRepositoryImpl) Create(ctx context.Context, req *entities.PaymentRequest) error {
	m := &models.PaymentRequest{
		ID:              req.ID,
		UserID:          req.UserID,
		Currency:        string(req.Currency),
		RequestedAmount: req.RequestedAmount.String(),
		CryptoAddress:   req.CryptoAddress,
		ExpiresAt:       req.ExpiresAt,
		CreatedAt:       time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PaymentRequestRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRequest, error) {
	var ms []models.PaymentRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	requests := make([]*entities.PaymentRequest, 0, len(ms))
	for _, m := range ms {
		requests = append(requests, &entities.PaymentRequest{
			ID:              m.ID,
			UserID:          m.UserID,
			Currency:        entities.Currency(m.Currency),
			RequestedAmount: parseAmount(m.RequestedAmount),
			CryptoAddress:   m.CryptoAddress,
			ExpiresAt:       m.ExpiresAt,
			CreatedAt:       m.CreatedAt,
		})
	}
	return requests, nil
}
