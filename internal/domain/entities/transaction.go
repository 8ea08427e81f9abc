package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeInvestment TransactionType = "investment"
	TransactionTypeProfit     TransactionType = "profit"
)

// TransactionStatus represents a ledger entry's state
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is one append-only ledger entry in fiat terms
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Method      string            `json:"method"`
	Reference   string            `json:"reference"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// UserBalance is the per-user rollup the dashboard reads
type UserBalance struct {
	UserID            uuid.UUID       `json:"userId"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalProfit       decimal.Decimal `json:"totalProfit"`
	TotalWithdrawals  decimal.Decimal `json:"totalWithdrawals"`
	ActiveInvestments int             `json:"activeInvestments"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// WithdrawalStatus represents a withdrawal request's state
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// WithdrawalRequest is a user's request to pay out fiat balance
type WithdrawalRequest struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"userId"`
	Amount         decimal.Decimal  `json:"amount"`
	Method         string           `json:"method"`
	AccountDetails string           `json:"accountDetails"`
	Status         WithdrawalStatus `json:"status"`
	ProcessedAt    *time.Time       `json:"processedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// CreateWithdrawalInput represents input for requesting a withdrawal
type CreateWithdrawalInput struct {
	Amount         string `json:"amount" binding:"required"`
	Method         string `json:"method" binding:"required"`
	AccountDetails string `json:"accountDetails" binding:"required"`
}
