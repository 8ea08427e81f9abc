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

// CompanyWalletRepositoryImpl implements CompanyWalletRepository
type CompanyWalletRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyWalletRepository(db *gorm.DB) *CompanyWalletRepositoryImpl {
	return &CompanyWalletRepositoryImpl{db: db}
}

func (r *CompanyWalletRepositoryImpl) ListActive(ctx context.Context) ([]*entities.CompanyWallet, error) {
	var ms []models.CompanyWallet
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("currency").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	wallets := make([]*entities.CompanyWallet, 0, len(ms))
	for _, m := range ms {
		model := m
		wallets = append(wallets, r.toEntity(&model))
	}
	return wallets, nil
}

func (r *CompanyWalletRepositoryImpl) GetActiveByCurrency(ctx context.Context, currency entities.Currency) (*entities.CompanyWallet, error) {
	var m models.CompanyWallet
	err := r.db.WithContext(ctx).
		Where("currency = ? AND is_active = ?", currency, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CompanyWalletRepositoryImpl) Upsert(ctx context.Context, currency entities.Currency, address, walletName string) (*entities.CompanyWallet, error) {
	var m models.CompanyWallet
	err := r.db.WithContext(ctx).Where("currency = ?", currency).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = models.CompanyWallet{
			ID:         uuid.New(),
			Currency:   string(currency),
			Address:    address,
			WalletName: walletName,
			IsActive:   true,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		updates := map[string]interface{}{
			"address":     address,
			"wallet_name": walletName,
			"is_active":   true,
			"updated_at":  time.Now(),
		}
		if err := r.db.WithContext(ctx).Model(&models.CompanyWallet{}).
			Where("id = ?", m.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
		m.Address = address
		m.WalletName = walletName
		m.IsActive = true
	}
	return r.toEntity(&m), nil
}

func (r *CompanyWalletRepositoryImpl) toEntity(m *models.CompanyWallet) *entities.CompanyWallet {
	return &entities.CompanyWallet{
		ID:         m.ID,
		Currency:   entities.Currency(m.Currency),
		Address:    m.Address,
		WalletName: m.WalletName,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
