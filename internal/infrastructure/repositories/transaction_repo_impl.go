package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	domainrepos "valora.backend/internal/domain/repositories"
	"valora.backend/internal/infrastructure/models"
)

// TransactionRepositoryImpl implements TransactionRepository
type TransactionRepositoryImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepositoryImpl {
	return &TransactionRepositoryImpl{db: db}
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *entities.Transaction) error {
	m := &models.Transaction{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount.String(),
		Method:      tx.Method,
		Reference:   tx.Reference,
		Description: tx.Description,
		Status:      string(tx.Status),
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *TransactionRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(ms))
	for _, m := range ms {
		txs = append(txs, &entities.Transaction{
			ID:          m.ID,
			UserID:      m.UserID,
			Type:        entities.TransactionType(m.Type),
			Amount:      parseAmount(m.Amount),
			Method:      m.Method,
			Reference:   m.Reference,
			Description: m.Description,
			Status:      entities.TransactionStatus(m.Status),
			CreatedAt:   m.CreatedAt,
		})
	}
	return txs, int(total), nil
}

// BalanceRepositoryImpl implements BalanceRepository
type BalanceRepositoryImpl struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepositoryImpl {
	return &BalanceRepositoryImpl{db: db}
}

func (r *BalanceRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserBalance, error) {
	var m models.UserBalance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No ledger activity yet reads as an all-zero balance
		return &entities.UserBalance{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &entities.UserBalance{
		UserID:            m.UserID,
		TotalBalance:      parseAmount(m.TotalBalance),
		TotalInvested:     parseAmount(m.TotalInvested),
		TotalProfit:       parseAmount(m.TotalProfit),
		TotalWithdrawals:  parseAmount(m.TotalWithdrawals),
		ActiveInvestments: m.ActiveInvestments,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}

func (r *BalanceRepositoryImpl) Apply(ctx context.Context, userID uuid.UUID, delta domainrepos.BalanceDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.UserBalance
		err := tx.Where("user_id = ?", userID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = models.UserBalance{
				UserID:           userID,
				TotalBalance:     "0",
				TotalInvested:    "0",
				TotalProfit:      "0",
				TotalWithdrawals: "0",
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_balance":      parseAmount(m.TotalBalance).Add(delta.Balance).String(),
			"total_invested":     parseAmount(m.TotalInvested).Add(delta.Invested).String(),
			"total_profit":       parseAmount(m.TotalProfit).Add(delta.Profit).String(),
			"total_withdrawals":  parseAmount(m.TotalWithdrawals).Add(delta.Withdrawals).String(),
			"active_investments": m.ActiveInvestments + delta.ActiveInvestments,
			"updated_at":         time.Now(),
		}
		return tx.Model(&models.UserBalance{}).Where("user_id = ?", userID).Updates(updates).Error
	})
}

// WithdrawalRepositoryImpl implements WithdrawalRepository
type WithdrawalRepositoryImpl struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepositoryImpl {
	return &WithdrawalRepositoryImpl{db: db}
}

func (r *WithdrawalRepositoryImpl) Create(ctx context.Context, w *entities.WithdrawalRequest) error {
	m := &models.WithdrawalRequest{
		ID:             w.ID,
		UserID:         w.UserID,
		Amount:         w.Amount.String(),
		Method:         w.Method,
		AccountDetails: w.AccountDetails,
		Status:         string(w.Status),
		CreatedAt:      time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *WithdrawalRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return withdrawalToEntity(&m), nil
}

func (r *WithdrawalRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error) {
	var ms []models.WithdrawalRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return withdrawalsToEntities(ms), nil
}

func (r *WithdrawalRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WithdrawalRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return withdrawalsToEntities(ms), int(total), nil
}

func (r *WithdrawalRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.WithdrawalStatus) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(status),
			"processed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func withdrawalsToEntities(ms []models.WithdrawalRequest) []*entities.WithdrawalRequest {
	out := make([]*entities.WithdrawalRequest, 0, len(ms))
	for _, m := range ms {
		model := m
		out = append(out, withdrawalToEntity(&model))
	}
	return out
}

func withdrawalToEntity(m *models.WithdrawalRequest) *entities.WithdrawalRequest {
	return &entities.WithdrawalRequest{
		ID:             m.ID,
		UserID:         m.UserID,
		Amount:         parseAmount(m.Amount),
		Method:         m.Method,
		AccountDetails: m.AccountDetails,
		Status:         entities.WithdrawalStatus(m.Status),
		ProcessedAt:    m.ProcessedAt,
		CreatedAt:      m.CreatedAt,
	}
}
