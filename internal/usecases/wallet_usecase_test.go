package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/usecases"
)

func TestUpsertWallet(t *testing.T) {
	walletRepo := new(MockCompanyWalletRepository)
	usecase := usecases.NewWalletUsecase(walletRepo)

	wallet := btcWallet()
	walletRepo.On("Upsert", mock.Anything, entities.CurrencyBTC, "bc1qnewaddress", "BTC Treasury").Return(wallet, nil)

	got, err := usecase.Upsert(context.Background(), entities.UpsertWalletInput{
		Currency:   "BTC",
		Address:    "bc1qnewaddress",
		WalletName: "BTC Treasury",
	})
	require.NoError(t, err)
	require.Equal(t, wallet, got)
	walletRepo.AssertExpectations(t)
}

func TestUpsertWalletRejectsUnknownCurrency(t *testing.T) {
	usecase := usecases.NewWalletUsecase(new(MockCompanyWalletRepository))

	_, err := usecase.Upsert(context.Background(), entities.UpsertWalletInput{
		Currency:   "DOGE",
		Address:    "D123",
		WalletName: "nope",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUpsertWalletRejectsMismatchedAddress(t *testing.T) {
	usecase := usecases.NewWalletUsecase(new(MockCompanyWalletRepository))

	cases := map[string]string{
		"BTC":        "0x1111111111111111111111111111111111111111",
		"ETH":        "bc1qsomewhere",
		"USDT-TRC20": "0x1111111111111111111111111111111111111111",
	}
	for currency, address := range cases {
		_, err := usecase.Upsert(context.Background(), entities.UpsertWalletInput{
			Currency:   currency,
			Address:    address,
			WalletName: "mismatch",
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput, "currency %s", currency)
	}
}

func TestGetByCurrency(t *testing.T) {
	walletRepo := new(MockCompanyWalletRepository)
	usecase := usecases.NewWalletUsecase(walletRepo)

	wallet := btcWallet()
	walletRepo.On("GetActiveByCurrency", mock.Anything, entities.CurrencyBTC).Return(wallet, nil)

	got, err := usecase.GetByCurrency(context.Background(), entities.CurrencyBTC)
	require.NoError(t, err)
	require.Equal(t, wallet, got)

	_, err = usecase.GetByCurrency(context.Background(), entities.Currency("XRP"))
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
