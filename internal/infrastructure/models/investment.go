package models

import (
	"time"

	"github.com/google/uuid"
)

type InvestmentPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	ROIPercentage string    `gorm:"column:roi_percentage;type:decimal(8,4);not null"`
	Frequency     string    `gorm:"type:varchar(20);not null"`
	MinAmount     string    `gorm:"type:decimal(18,2);not null"`
	MaxAmount     string    `gorm:"type:decimal(18,2);not null"`
	IsActive      bool      `gorm:"default:true"`
	CreatedAt     time.Time
}

func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

type Investment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID        uuid.UUID `gorm:"type:uuid;not null"`
	PlanName      string    `gorm:"type:varchar(100);not null"`
	Amount        string    `gorm:"type:decimal(18,2);not null"`
	ROIPercentage string    `gorm:"column:roi_percentage;type:decimal(8,4);not null"`
	Frequency     string    `gorm:"type:varchar(20);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Investment) TableName() string {
	return "investments"
}
