package repositories

import (
	"context"

	"valora.backend/internal/domain/entities"
)

// CompanyWalletRepository defines company wallet data operations
type CompanyWalletRepository interface {
	// ListActive returns active wallets ordered by currency
	ListActive(ctx context.Context) ([]*entities.CompanyWallet, error)
	// GetActiveByCurrency returns the active wallet for a currency, or ErrNotFound
	GetActiveByCurrency(ctx context.Context, currency entities.Currency) (*entities.CompanyWallet, error)
	// Upsert creates or replaces the wallet for a currency. At most one
	// active wallet per currency holds by construction.
	Upsert(ctx context.Context, currency entities.Currency, address, walletName string) (*entities.CompanyWallet, error)
}
