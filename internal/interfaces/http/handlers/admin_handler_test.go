package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
)

type adminUserServiceStub struct {
	listFn   func(ctx context.Context, page, limit int) ([]*entities.User, int, error)
	reviewFn func(ctx context.Context, id uuid.UUID, status entities.KycStatus) (*entities.User, error)
}

func (s adminUserServiceStub) ListUsers(ctx context.Context, page, limit int) ([]*entities.User, int, error) {
	return s.listFn(ctx, page, limit)
}
func (s adminUserServiceStub) ReviewKyc(ctx context.Context, id uuid.UUID, status entities.KycStatus) (*entities.User, error) {
	return s.reviewFn(ctx, id, status)
}

type adminDepositServiceStub struct {
	listFn    func(ctx context.Context, page, limit int) ([]*entities.PaymentTracking, int, error)
	confirmFn func(ctx context.Context, id uuid.UUID, txHash string, confirmations int) (*entities.PaymentTracking, error)
}

func (s adminDepositServiceStub) ListAll(ctx context.Context, page, limit int) ([]*entities.PaymentTracking, int, error) {
	return s.listFn(ctx, page, limit)
}
func (s adminDepositServiceStub) ManuallyConfirm(ctx context.Context, id uuid.UUID, txHash string, confirmations int) (*entities.PaymentTracking, error) {
	return s.confirmFn(ctx, id, txHash, confirmations)
}

type adminWalletServiceStub struct {
	upsertFn func(ctx context.Context, input entities.UpsertWalletInput) (*entities.CompanyWallet, error)
}

func (s adminWalletServiceStub) Upsert(ctx context.Context, input entities.UpsertWalletInput) (*entities.CompanyWallet, error) {
	return s.upsertFn(ctx, input)
}

type adminWithdrawalServiceStub struct {
	listFn     func(ctx context.Context, page, limit int) ([]*entities.WithdrawalRequest, int, error)
	completeFn func(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	failFn     func(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
}

func (s adminWithdrawalServiceStub) ListAll(ctx context.Context, page, limit int) ([]*entities.WithdrawalRequest, int, error) {
	return s.listFn(ctx, page, limit)
}
func (s adminWithdrawalServiceStub) Complete(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	return s.completeFn(ctx, id)
}
func (s adminWithdrawalServiceStub) Fail(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	return s.failFn(ctx, id)
}

type reconcileRunnerStub struct {
	reconcileFn func(ctx context.Context) error
}

func (s reconcileRunnerStub) Reconcile(ctx context.Context) error {
	return s.reconcileFn(ctx)
}

func TestAdminHandler_ReviewKyc(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	users := adminUserServiceStub{
		reviewFn: func(_ context.Context, id uuid.UUID, status entities.KycStatus) (*entities.User, error) {
			if status != entities.KycStatusApproved {
				return nil, domainerrors.BadRequest("invalid kyc status")
			}
			return &entities.User{ID: id, KycStatus: status}, nil
		},
	}

	h := NewAdminHandler(users, adminDepositServiceStub{}, adminWalletServiceStub{}, adminWithdrawalServiceStub{}, reconcileRunnerStub{})
	r := gin.New()
	r.PATCH("/admin/users/:id/kyc", h.ReviewKyc)

	// approve
	body := []byte(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPatch, "/admin/users/"+userID.String()+"/kyc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// usecase rejects unknown status
	body = []byte(`{"status":"maybe"}`)
	req = httptest.NewRequest(http.MethodPatch, "/admin/users/"+userID.String()+"/kyc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	// malformed id
	req = httptest.NewRequest(http.MethodPatch, "/admin/users/abc/kyc", bytes.NewReader([]byte(`{"status":"approved"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminHandler_ConfirmDeposit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	depositID := uuid.New()

	deposits := adminDepositServiceStub{
		confirmFn: func(_ context.Context, id uuid.UUID, txHash string, confirmations int) (*entities.PaymentTracking, error) {
			if id != depositID {
				return nil, domainerrors.NotFound("deposit not found")
			}
			return &entities.PaymentTracking{
				ID:            id,
				Status:        entities.PaymentTrackingStatusConfirmed,
				TxHash:        null.StringFrom(txHash),
				Confirmations: null.IntFrom(confirmations),
			}, nil
		},
	}

	h := NewAdminHandler(adminUserServiceStub{}, deposits, adminWalletServiceStub{}, adminWithdrawalServiceStub{}, reconcileRunnerStub{})
	r := gin.New()
	r.POST("/admin/deposits/:id/confirm", h.ConfirmDeposit)

	// success
	body := []byte(`{"txHash":"0xabc","confirmations":12}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/deposits/"+depositID.String()+"/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// tx hash is mandatory evidence
	body = []byte(`{"confirmations":12}`)
	req = httptest.NewRequest(http.MethodPost, "/admin/deposits/"+depositID.String()+"/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	// unknown deposit
	body = []byte(`{"txHash":"0xabc"}`)
	req = httptest.NewRequest(http.MethodPost, "/admin/deposits/"+uuid.New().String()+"/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminHandler_UpsertWallet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	wallets := adminWalletServiceStub{
		upsertFn: func(_ context.Context, input entities.UpsertWalletInput) (*entities.CompanyWallet, error) {
			if input.Currency == "DOGE" {
				return nil, domainerrors.BadRequest("unsupported currency: DOGE")
			}
			return &entities.CompanyWallet{ID: uuid.New(), Currency: entities.Currency(input.Currency), Address: input.Address}, nil
		},
	}

	h := NewAdminHandler(adminUserServiceStub{}, adminDepositServiceStub{}, wallets, adminWithdrawalServiceStub{}, reconcileRunnerStub{})
	r := gin.New()
	r.PUT("/admin/wallets", h.UpsertWallet)

	body := []byte(`{"currency":"BTC","address":"bc1qnewaddress","walletName":"Treasury BTC"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/wallets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	body = []byte(`{"currency":"DOGE","address":"Dxyz","walletName":"Treasury DOGE"}`)
	req = httptest.NewRequest(http.MethodPut, "/admin/wallets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminHandler_WithdrawalLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pendingID := uuid.New()
	settledID := uuid.New()

	withdrawals := adminWithdrawalServiceStub{
		listFn: func(_ context.Context, page, limit int) ([]*entities.WithdrawalRequest, int, error) {
			return []*entities.WithdrawalRequest{{ID: pendingID}}, 1, nil
		},
		completeFn: func(_ context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
			if id == settledID {
				return nil, domainerrors.Conflict("withdrawal already processed")
			}
			return &entities.WithdrawalRequest{ID: id, Status: entities.WithdrawalStatusCompleted}, nil
		},
		failFn: func(_ context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
			return &entities.WithdrawalRequest{ID: id, Status: entities.WithdrawalStatusFailed}, nil
		},
	}

	h := NewAdminHandler(adminUserServiceStub{}, adminDepositServiceStub{}, adminWalletServiceStub{}, withdrawals, reconcileRunnerStub{})
	r := gin.New()
	r.GET("/admin/withdrawals", h.ListWithdrawals)
	r.POST("/admin/withdrawals/:id/complete", h.CompleteWithdrawal)
	r.POST("/admin/withdrawals/:id/fail", h.FailWithdrawal)

	req := httptest.NewRequest(http.MethodGet, "/admin/withdrawals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/withdrawals/"+pendingID.String()+"/complete", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// double settle is a conflict
	req = httptest.NewRequest(http.MethodPost, "/admin/withdrawals/"+settledID.String()+"/complete", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/withdrawals/"+pendingID.String()+"/fail", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminHandler_Lists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	users := adminUserServiceStub{
		listFn: func(_ context.Context, page, limit int) ([]*entities.User, int, error) {
			return []*entities.User{{ID: uuid.New()}}, 1, nil
		},
	}
	deposits := adminDepositServiceStub{
		listFn: func(_ context.Context, page, limit int) ([]*entities.PaymentTracking, int, error) {
			return []*entities.PaymentTracking{{ID: uuid.New()}}, 1, nil
		},
	}

	h := NewAdminHandler(users, deposits, adminWalletServiceStub{}, adminWithdrawalServiceStub{}, reconcileRunnerStub{})
	r := gin.New()
	r.GET("/admin/users", h.ListUsers)
	r.GET("/admin/deposits", h.ListDeposits)

	for _, path := range []string{"/admin/users", "/admin/deposits"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d body=%s", path, w.Code, w.Body.String())
		}
	}
}

func TestAdminHandler_TriggerReconcile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	calls := 0
	runner := reconcileRunnerStub{
		reconcileFn: func(context.Context) error {
			calls++
			if calls > 1 {
				return errors.New("observer outage")
			}
			return nil
		},
	}

	h := NewAdminHandler(adminUserServiceStub{}, adminDepositServiceStub{}, adminWalletServiceStub{}, adminWithdrawalServiceStub{}, runner)
	r := gin.New()
	r.POST("/admin/reconcile", h.TriggerReconcile)

	req := httptest.NewRequest(http.MethodPost, "/admin/reconcile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/reconcile", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", w.Code, w.Body.String())
	}
}
