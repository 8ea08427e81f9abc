package repositories

import (
	"context"

	"github.com/google/uuid"
	"valora.backend/internal/domain/entities"
)

// PaymentTrackingRepository defines deposit tracking data operations
type PaymentTrackingRepository interface {
	Create(ctx context.Context, tracking *entities.PaymentTracking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentTracking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.PaymentTracking, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.PaymentTracking, int, error)
	// ListOpenByAddress returns pending and paid records for a company
	// address, oldest first. Scan order is the reconciliation tie-break.
	ListOpenByAddress(ctx context.Context, address string) ([]*entities.PaymentTracking, error)
	// UpdateStatus advances a record and optionally stamps chain evidence.
	// Pass empty txHash / negative confirmations to leave evidence untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentTrackingStatus, txHash string, confirmations int) error
	// GetExpiredPending returns pending records past their expiry instant
	GetExpiredPending(ctx context.Context, limit int) ([]*entities.PaymentTracking, error)
	ExpireRecords(ctx context.Context, ids []uuid.UUID) error
}

// PaymentRequestRepository defines deposit intent data operations
type PaymentRequestRepository interface {
	Create(ctx context.Context, request *entities.PaymentRequest) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRequest, error)
}
