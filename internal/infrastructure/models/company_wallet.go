package models

import (
	"time"

	"github.com/google/uuid"
)

type CompanyWallet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Currency   string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Address    string    `gorm:"type:varchar(255);not null"`
	WalletName string    `gorm:"type:varchar(100);not null"`
	IsActive   bool      `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CompanyWallet) TableName() string {
	return "company_wallets"
}
