package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentPlan is a product offering a fixed return schedule
type InvestmentPlan struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ROIPercentage decimal.Decimal `json:"roiPercentage"`
	Frequency     string          `json:"frequency"` // daily, weekly, monthly
	MinAmount     decimal.Decimal `json:"minAmount"`
	MaxAmount     decimal.Decimal `json:"maxAmount"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InvestmentStatus represents an investment's state
type InvestmentStatus string

const (
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusCompleted InvestmentStatus = "completed"
	InvestmentStatusCancelled InvestmentStatus = "cancelled"
)

// Investment records a user's stake in a plan. Plan terms are
// snapshotted so later plan edits do not change running investments.
type Investment struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"userId"`
	PlanID        uuid.UUID        `json:"planId"`
	PlanName      string           `json:"planName"`
	Amount        decimal.Decimal  `json:"amount"`
	ROIPercentage decimal.Decimal  `json:"roiPercentage"`
	Frequency     string           `json:"frequency"`
	Status        InvestmentStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// CreateInvestmentInput represents input for creating an investment
type CreateInvestmentInput struct {
	PlanID string `json:"planId" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}
