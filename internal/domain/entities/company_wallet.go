package entities

import (
	"time"

	"github.com/google/uuid"
)

// CompanyWallet is a platform-controlled receiving address, one per
// supported currency. All user deposits in that currency are sent here.
type CompanyWallet struct {
	ID         uuid.UUID `json:"id"`
	Currency   Currency  `json:"currency"`
	Address    string    `json:"address"`
	WalletName string    `json:"walletName"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpsertWalletInput represents administrative input for setting the
// receiving wallet of a currency
type UpsertWalletInput struct {
	Currency   string `json:"currency" binding:"required"`
	Address    string `json:"address" binding:"required"`
	WalletName string `json:"walletName" binding:"required"`
}
