package usecases

import (
	"context"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/domain/repositories"
)

// WalletUsecase handles company wallet administration
type WalletUsecase struct {
	walletRepo repositories.CompanyWalletRepository
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.CompanyWalletRepository) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo}
}

// ListActive returns the active receiving wallets
func (u *WalletUsecase) ListActive(ctx context.Context) ([]*entities.CompanyWallet, error) {
	return u.walletRepo.ListActive(ctx)
}

// GetByCurrency returns the active wallet for a currency
func (u *WalletUsecase) GetByCurrency(ctx context.Context, currency entities.Currency) (*entities.CompanyWallet, error) {
	if !currency.IsValid() {
		return nil, domainerrors.BadRequest("unsupported currency: " + string(currency))
	}
	return u.walletRepo.GetActiveByCurrency(ctx, currency)
}

// Upsert sets the receiving wallet for a currency. The address format is
// checked against the currency's address family before it is stored.
func (u *WalletUsecase) Upsert(ctx context.Context, input entities.UpsertWalletInput) (*entities.CompanyWallet, error) {
	currency := entities.Currency(input.Currency)
	if !currency.IsValid() {
		return nil, domainerrors.BadRequest("unsupported currency: " + input.Currency)
	}
	if !currency.ValidAddress(input.Address) {
		return nil, domainerrors.BadRequest("address does not match the " + input.Currency + " format")
	}
	return u.walletRepo.Upsert(ctx, currency, input.Address, input.WalletName)
}
