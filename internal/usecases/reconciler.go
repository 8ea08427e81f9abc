package usecases

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	"valora.backend/internal/domain/repositories"
	"valora.backend/internal/infrastructure/explorer"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/internal/metrics"
	"valora.backend/pkg/logger"
)

// matchTolerance is the relative tolerance for matching an observed
// transfer against the expected crypto amount (0.01%). The boundary is
// inclusive.
var matchTolerance = decimal.RequireFromString("0.0001")

// Reconciler matches observed on-chain transfers against open deposit
// records for the company wallets.
type Reconciler struct {
	walletRepo   repositories.CompanyWalletRepository
	trackingRepo repositories.PaymentTrackingRepository
	userRepo     repositories.UserRepository
	txRepo       repositories.TransactionRepository
	balanceRepo  repositories.BalanceRepository
	observers    *explorer.Registry
	notifier     notifications.Notifier
}

// NewReconciler creates a new reconciler
func NewReconciler(
	walletRepo repositories.CompanyWalletRepository,
	trackingRepo repositories.PaymentTrackingRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	balanceRepo repositories.BalanceRepository,
	observers *explorer.Registry,
	notifier notifications.Notifier,
) *Reconciler {
	return &Reconciler{
		walletRepo:   walletRepo,
		trackingRepo: trackingRepo,
		userRepo:     userRepo,
		txRepo:       txRepo,
		balanceRepo:  balanceRepo,
		observers:    observers,
		notifier:     notifier,
	}
}

// Reconcile runs one pass over every active company wallet. A failure
// on one wallet is logged and counted; the remaining wallets still run.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	wallets, err := r.walletRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, wallet := range wallets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.reconcileWallet(ctx, wallet); err != nil {
			metrics.WalletFetchFailures.WithLabelValues(string(wallet.Currency)).Inc()
			logger.Warn(ctx, "wallet reconciliation failed",
				zap.String("currency", string(wallet.Currency)),
				zap.String("address", wallet.Address),
				zap.Error(err))
		}
	}

	metrics.ReconcilePasses.Inc()
	return nil
}

func (r *Reconciler) reconcileWallet(ctx context.Context, wallet *entities.CompanyWallet) error {
	observer, err := r.observers.Get(wallet.Currency)
	if err != nil {
		return err
	}

	observed, err := observer.FetchInboundTransactions(ctx, wallet.Address)
	if err != nil {
		return err
	}
	if len(observed) == 0 {
		return nil
	}

	open, err := r.trackingRepo.ListOpenByAddress(ctx, wallet.Address)
	if err != nil {
		return err
	}

	// Oldest record first; a hash feeds at most one record per pass.
	claimed := make(map[string]bool)
	for _, record := range open {
		tx := r.matchTransaction(record, observed, claimed)
		if tx == nil {
			continue
		}
		claimed[tx.Hash] = true

		if err := r.advanceRecord(ctx, record, tx); err != nil {
			logger.Error(ctx, "failed to advance deposit record",
				zap.String("tracking_id", record.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// matchTransaction finds the observed transfer feeding a record. A paid
// record stays bound to the hash stamped on it; a pending record takes
// the first unclaimed transfer within tolerance of its expected amount.
func (r *Reconciler) matchTransaction(record *entities.PaymentTracking, observed []entities.ObservedTransaction, claimed map[string]bool) *entities.ObservedTransaction {
	if record.Status == entities.PaymentTrackingStatusPaid && record.TxHash.Valid {
		for i := range observed {
			if observed[i].Hash == record.TxHash.String && !claimed[observed[i].Hash] {
				return &observed[i]
			}
		}
		return nil
	}

	for i := range observed {
		tx := &observed[i]
		if claimed[tx.Hash] {
			continue
		}
		if amountWithinTolerance(tx.DisplayValue(), record.CryptoAmount) {
			return tx
		}
	}
	return nil
}

func (r *Reconciler) advanceRecord(ctx context.Context, record *entities.PaymentTracking, tx *entities.ObservedTransaction) error {
	status := entities.PaymentTrackingStatusPaid
	if tx.Confirmations >= record.Currency.ConfirmationThreshold() {
		status = entities.PaymentTrackingStatusConfirmed
	}

	if record.Status == status && record.Confirmations.Valid && record.Confirmations.Int == tx.Confirmations {
		return nil
	}

	if err := r.trackingRepo.UpdateStatus(ctx, record.ID, status, tx.Hash, tx.Confirmations); err != nil {
		return err
	}

	metrics.DepositMatches.WithLabelValues(string(record.Currency), string(status)).Inc()
	logger.Info(ctx, "deposit matched on chain",
		zap.String("tracking_id", record.ID.String()),
		zap.String("tx_hash", tx.Hash),
		zap.String("observed_amount", tx.DisplayValue().String()),
		zap.String("expected_amount", record.CryptoAmount.String()),
		zap.Int("confirmations", tx.Confirmations),
		zap.String("status", string(status)))

	if status == entities.PaymentTrackingStatusConfirmed {
		settled := *record
		settled.Status = status
		settled.TxHash.SetValid(tx.Hash)
		settled.Confirmations.SetValid(tx.Confirmations)
		return settleConfirmedDeposit(ctx, r.userRepo, r.txRepo, r.balanceRepo, r.notifier, &settled)
	}
	return nil
}

// amountWithinTolerance reports whether observed is within 0.01% of
// expected, boundary inclusive.
func amountWithinTolerance(observed, expected decimal.Decimal) bool {
	diff := observed.Sub(expected).Abs()
	return diff.LessThanOrEqual(expected.Mul(matchTolerance))
}
