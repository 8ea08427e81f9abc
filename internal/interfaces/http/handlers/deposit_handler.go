package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/interfaces/http/middleware"
	"valora.backend/internal/interfaces/http/response"
	"valora.backend/internal/usecases"
	"valora.backend/pkg/utils"
)

type DepositService interface {
	CreateDeposit(ctx context.Context, userID uuid.UUID, input usecases.CreateDepositInput) (*entities.PaymentTracking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentTracking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.PaymentTracking, int, error)
}

// DepositHandler handles deposit tracking endpoints
type DepositHandler struct {
	depositUsecase DepositService
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(depositUsecase DepositService) *DepositHandler {
	return &DepositHandler{depositUsecase: depositUsecase}
}

// Create opens a tracked deposit
// POST /api/v1/deposits
func (h *DepositHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input usecases.CreateDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tracking, err := h.depositUsecase.CreateDeposit(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tracking)
}

// List returns the caller's tracked deposits
// GET /api/v1/deposits
func (h *DepositHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	deposits, total, err := h.depositUsecase.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, deposits, utils.CalculateMeta(int64(total), page, limit))
}

// Get returns one tracked deposit. Users see only their own records;
// admins see any.
// GET /api/v1/deposits/:id
func (h *DepositHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid deposit id"))
		return
	}

	tracking, err := h.depositUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if tracking.UserID != userID && role != "admin" {
		response.Error(c, domainerrors.NotFound("deposit not found"))
		return
	}

	response.Success(c, http.StatusOK, tracking)
}
