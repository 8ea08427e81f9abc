package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
)

type withdrawalServiceStub struct {
	createFn func(ctx context.Context, userID uuid.UUID, input entities.CreateWithdrawalInput) (*entities.WithdrawalRequest, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error)
}

func (s withdrawalServiceStub) CreateWithdrawal(ctx context.Context, userID uuid.UUID, input entities.CreateWithdrawalInput) (*entities.WithdrawalRequest, error) {
	return s.createFn(ctx, userID, input)
}
func (s withdrawalServiceStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error) {
	return s.listFn(ctx, userID)
}

func TestWithdrawalHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := withdrawalServiceStub{
		createFn: func(_ context.Context, gotUserID uuid.UUID, input entities.CreateWithdrawalInput) (*entities.WithdrawalRequest, error) {
			if input.Amount == "999999" {
				return nil, domainerrors.InsufficientFunds()
			}
			return &entities.WithdrawalRequest{ID: uuid.New(), UserID: gotUserID}, nil
		},
	}

	h := NewWithdrawalHandler(service)
	r := gin.New()
	r.POST("/withdrawals", withUserContext(userID, "user"), h.Create)

	body := []byte(`{"amount":"100","method":"bank_transfer","accountDetails":"IBAN XX00"}`)
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	body = []byte(`{"amount":"999999","method":"bank_transfer","accountDetails":"IBAN XX00"}`)
	req = httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader([]byte(`{"amount":"100"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestWithdrawalHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := withdrawalServiceStub{
		listFn: func(_ context.Context, gotUserID uuid.UUID) ([]*entities.WithdrawalRequest, error) {
			return []*entities.WithdrawalRequest{{ID: uuid.New(), UserID: gotUserID}}, nil
		},
	}

	h := NewWithdrawalHandler(service)
	r := gin.New()
	r.GET("/withdrawals", withUserContext(userID, "user"), h.List)

	req := httptest.NewRequest(http.MethodGet, "/withdrawals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}
