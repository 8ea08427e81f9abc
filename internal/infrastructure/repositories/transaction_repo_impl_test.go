package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	domainrepos "valora.backend/internal/domain/repositories"
)

func TestTransactionRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	tx := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      entities.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(100),
		Method:    "BTC",
		Reference: "TXN_1_abc",
		Status:    entities.TransactionStatusCompleted,
	}
	require.NoError(t, repo.Create(ctx, tx))

	got, total, err := repo.GetByUserID(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, got, 1)
	require.Equal(t, entities.TransactionTypeDeposit, got[0].Type)
	require.True(t, got[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestTransactionRepository_DuplicateReference(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	base := &entities.Transaction{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      entities.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(1),
		Method:    "BTC",
		Reference: "TXN_dup",
		Status:    entities.TransactionStatusPending,
	}
	require.NoError(t, repo.Create(ctx, base))

	dup := *base
	dup.ID = uuid.New()
	require.Error(t, repo.Create(ctx, &dup))
}

func TestBalanceRepository_GetMissingReadsZero(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	repo := NewBalanceRepository(db)

	balance, err := repo.GetByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, balance.TotalBalance.IsZero())
	require.Zero(t, balance.ActiveInvestments)
}

func TestBalanceRepository_ApplyAccumulates(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	repo := NewBalanceRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	require.NoError(t, repo.Apply(ctx, userID, domainrepos.BalanceDelta{
		Balance: decimal.NewFromInt(100),
	}))
	require.NoError(t, repo.Apply(ctx, userID, domainrepos.BalanceDelta{
		Balance:           decimal.NewFromInt(-30),
		Invested:          decimal.NewFromInt(30),
		ActiveInvestments: 1,
	}))

	balance, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, balance.TotalBalance.Equal(decimal.NewFromInt(70)))
	require.True(t, balance.TotalInvested.Equal(decimal.NewFromInt(30)))
	require.Equal(t, 1, balance.ActiveInvestments)
}

func TestWithdrawalRepository_FullFlow(t *testing.T) {
	db := newTestDB(t)
	createLedgerTables(t, db)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	w := &entities.WithdrawalRequest{
		ID:             uuid.New(),
		UserID:         userID,
		Amount:         decimal.NewFromInt(250),
		Method:         "bank_transfer",
		AccountDetails: "IBAN DE00 0000",
		Status:         entities.WithdrawalStatusPending,
	}
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(250)))
	require.Nil(t, got.ProcessedAt)

	mine, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, total, err := repo.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, all, 1)

	require.NoError(t, repo.UpdateStatus(ctx, w.ID, entities.WithdrawalStatusCompleted))
	got, err = repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WithdrawalStatusCompleted, got.Status)
	require.NotNil(t, got.ProcessedAt)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.WithdrawalStatusFailed), domainerrors.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentRequestRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRequestRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	req := &entities.PaymentRequest{
		ID:              uuid.New(),
		UserID:          userID,
		Currency:        entities.CurrencyETH,
		RequestedAmount: decimal.NewFromInt(500),
		CryptoAddress:   "0x1111111111111111111111111111111111111111",
	}
	require.NoError(t, repo.Create(ctx, req))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, entities.CurrencyETH, got[0].Currency)
}
