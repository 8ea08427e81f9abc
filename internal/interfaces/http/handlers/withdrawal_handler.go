package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/interfaces/http/middleware"
	"valora.backend/internal/interfaces/http/response"
)

type withdrawalService interface {
	CreateWithdrawal(ctx context.Context, userID uuid.UUID, input entities.CreateWithdrawalInput) (*entities.WithdrawalRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.WithdrawalRequest, error)
}

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	withdrawalUsecase withdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase withdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

// Create opens a withdrawal request
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.withdrawalUsecase.CreateWithdrawal(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, withdrawal)
}

// List returns the caller's withdrawal requests
// GET /api/v1/withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	withdrawals, err := h.withdrawalUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, withdrawals)
}
