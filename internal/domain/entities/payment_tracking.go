package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentTrackingStatus represents the lifecycle of a tracked deposit
type PaymentTrackingStatus string

const (
	// PaymentTrackingStatusPending means no matching transaction has been observed yet
	PaymentTrackingStatusPending PaymentTrackingStatus = "pending"
	// PaymentTrackingStatusPaid means a matching transaction was seen but has
	// not reached the currency's confirmation threshold
	PaymentTrackingStatusPaid PaymentTrackingStatus = "paid"
	// PaymentTrackingStatusConfirmed is terminal; the hash/confirmation pair is
	// the audit evidence for the balance credit
	PaymentTrackingStatusConfirmed PaymentTrackingStatus = "confirmed"
	// PaymentTrackingStatusExpired is terminal; the 24h window elapsed unmatched
	PaymentTrackingStatusExpired PaymentTrackingStatus = "expired"
)

// IsTerminal reports whether the status admits no further automatic transitions
func (s PaymentTrackingStatus) IsTerminal() bool {
	return s == PaymentTrackingStatusConfirmed || s == PaymentTrackingStatusExpired
}

// PaymentTracking maps a user's fiat deposit intent to a company wallet
// and records the on-chain evidence once the deposit is observed.
type PaymentTracking struct {
	ID               uuid.UUID             `json:"id"`
	UserID           uuid.UUID             `json:"userId"`
	PaymentRequestID uuid.UUID             `json:"paymentRequestId"`
	CompanyWalletID  uuid.UUID             `json:"companyWalletId"`
	Currency         Currency              `json:"currency"`
	RequestedAmount  decimal.Decimal       `json:"requestedAmount"` // fiat (USD)
	CryptoAmount     decimal.Decimal       `json:"cryptoAmount"`
	// CompanyAddress is a copy of the wallet address at creation time.
	// Later wallet edits must not retarget open deposits.
	CompanyAddress string                `json:"companyAddress"`
	UserReference  string                `json:"userReference"`
	Status         PaymentTrackingStatus `json:"status"`
	TxHash         null.String           `json:"txHash,omitempty"`
	Confirmations  null.Int              `json:"confirmations,omitempty"`
	ExpiresAt      time.Time             `json:"expiresAt"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// PaymentRequest is the originating deposit intent row
type PaymentRequest struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Currency        Currency        `json:"currency"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	CryptoAddress   string          `json:"cryptoAddress"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ObservedTransaction is one inbound transfer reported by a chain
// explorer. Value is in the chain's smallest unit; the Currency tag
// says which unit that is. Ephemeral, never persisted.
type ObservedTransaction struct {
	Currency      Currency
	Hash          string
	Value         decimal.Decimal
	Confirmations int
	Timestamp     time.Time
	From          string
	To            string
}

// DisplayValue converts the native-unit value to the currency's display unit
func (tx ObservedTransaction) DisplayValue() decimal.Decimal {
	return tx.Value.Div(tx.Currency.UnitScale())
}
