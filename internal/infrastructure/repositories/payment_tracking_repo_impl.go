package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/infrastructure/models"
)

// PaymentTrackingRepositoryImpl implements PaymentTrackingRepository
type PaymentTrackingRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentTrackingRepository(db *gorm.DB) *PaymentTrackingRepositoryImpl {
	return &PaymentTrackingRepositoryImpl{db: db}
}

func (r *PaymentTrackingRepositoryImpl) Create(ctx context.Context, t *entities.PaymentTracking) error {
	m := &models.PaymentTracking{
		ID:               t.ID,
		UserID:           t.UserID,
		PaymentRequestID: t.PaymentRequestID,
		CompanyWalletID:  t.CompanyWalletID,
		Currency:         string(t.Currency),
		RequestedAmount:  t.RequestedAmount.String(),
		CryptoAmount:     t.CryptoAmount.String(),
		CompanyAddress:   t.CompanyAddress,
		UserReference:    t.UserReference,
		Status:           string(t.Status),
		ExpiresAt:        t.ExpiresAt,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PaymentTrackingRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentTracking, error) {
	var m models.PaymentTracking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *PaymentTrackingRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.PaymentTracking, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentTracking{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PaymentTracking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

func (r *PaymentTrackingRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*entities.PaymentTracking, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentTracking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PaymentTracking
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

func (r *PaymentTrackingRepositoryImpl) ListOpenByAddress(ctx context.Context, address string) ([]*entities.PaymentTracking, error) {
	var ms []models.PaymentTracking
	if err := r.db.WithContext(ctx).
		Where("company_address = ? AND status IN ?", address,
			[]string{string(entities.PaymentTrackingStatusPending), string(entities.PaymentTrackingStatusPaid)}).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *PaymentTrackingRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentTrackingStatus, txHash string, confirmations int) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}
	if confirmations >= 0 {
		updates["confirmations"] = confirmations
	}

	res := r.db.WithContext(ctx).Model(&models.PaymentTracking{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PaymentTrackingRepositoryImpl) GetExpiredPending(ctx context.Context, limit int) ([]*entities.PaymentTracking, error) {
	var ms []models.PaymentTracking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", entities.PaymentTrackingStatusPending, time.Now()).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *PaymentTrackingRepositoryImpl) ExpireRecords(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.PaymentTracking{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entities.PaymentTrackingStatusExpired),
			"updated_at": time.Now(),
		}).Error
}

func (r *PaymentTrackingRepositoryImpl) toEntities(ms []models.PaymentTracking) []*entities.PaymentTracking {
	out := make([]*entities.PaymentTracking, 0, len(ms))
	for _, m := range ms {
		model := m
		out = append(out, r.toEntity(&model))
	}
	return out
}

func (r *PaymentTrackingRepositoryImpl) toEntity(m *models.PaymentTracking) *entities.PaymentTracking {
	t := &entities.PaymentTracking{
		ID:               m.ID,
		UserID:           m.UserID,
		PaymentRequestID: m.PaymentRequestID,
		CompanyWalletID:  m.CompanyWalletID,
		Currency:         entities.Currency(m.Currency),
		RequestedAmount:  parseAmount(m.RequestedAmount),
		CryptoAmount:     parseAmount(m.CryptoAmount),
		CompanyAddress:   m.CompanyAddress,
		UserReference:    m.UserReference,
		Status:           entities.PaymentTrackingStatus(m.Status),
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.TxHash != nil {
		t.TxHash = null.StringFrom(*m.TxHash)
	}
	if m.Confirmations != nil {
		t.Confirmations = null.IntFrom(*m.Confirmations)
	}
	return t
}

// parseAmount converts a stored decimal string; malformed rows read as zero
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
