package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(20);not null;index"`
	Amount      string    `gorm:"type:decimal(18,2);not null"`
	Method      string    `gorm:"type:varchar(50);not null"`
	Reference   string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}

type UserBalance struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalBalance      string    `gorm:"type:decimal(18,2);not null;default:'0'"`
	TotalInvested     string    `gorm:"type:decimal(18,2);not null;default:'0'"`
	TotalProfit       string    `gorm:"type:decimal(18,2);not null;default:'0'"`
	TotalWithdrawals  string    `gorm:"type:decimal(18,2);not null;default:'0'"`
	ActiveInvestments int       `gorm:"not null;default:0"`
	UpdatedAt         time.Time
}

func (UserBalance) TableName() string {
	return "user_balances"
}

type WithdrawalRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount         string    `gorm:"type:decimal(18,2);not null"`
	Method         string    `gorm:"type:varchar(50);not null"`
	AccountDetails string    `gorm:"type:text;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProcessedAt    *time.Time
	CreatedAt      time.Time
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
