package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentTracking struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentRequestID uuid.UUID `gorm:"type:uuid;not null"`
	CompanyWalletID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency         string    `gorm:"type:varchar(20);not null"`
	RequestedAmount  string    `gorm:"type:decimal(18,2);not null"`
	CryptoAmount     string    `gorm:"type:decimal(36,18);not null"`
	CompanyAddress   string    `gorm:"type:varchar(255);not null;index"`
	UserReference    string    `gorm:"type:varchar(50);not null;index"`
	Status           string    `gorm:"type:varchar(20);not null;index"`
	TxHash           *string   `gorm:"type:varchar(255)"`
	Confirmations    *int
	ExpiresAt        time.Time `gorm:"not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PaymentTracking) TableName() string {
	return "user_payment_tracking"
}

type PaymentRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency        string    `gorm:"type:varchar(20);not null"`
	RequestedAmount string    `gorm:"type:decimal(18,2);not null"`
	CryptoAddress   string    `gorm:"type:varchar(255);not null"`
	ExpiresAt       time.Time `gorm:"not null"`
	CreatedAt       time.Time
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}
