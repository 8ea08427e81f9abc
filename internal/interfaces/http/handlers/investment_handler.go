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

type investmentService interface {
	ListPlans(ctx context.Context) ([]*entities.InvestmentPlan, error)
	CreateInvestment(ctx context.Context, userID uuid.UUID, input entities.CreateInvestmentInput) (*entities.Investment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error)
}

// InvestmentHandler handles investment endpoints
type InvestmentHandler struct {
	investmentUsecase investmentService
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentUsecase investmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentUsecase: investmentUsecase}
}

// ListPlans returns the active investment plans
// GET /api/v1/plans
func (h *InvestmentHandler) ListPlans(c *gin.Context) {
	plans, err := h.investmentUsecase.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans)
}

// Create stakes balance into a plan
// POST /api/v1/investments
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	investment, err := h.investmentUsecase.CreateInvestment(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, investment)
}

// List returns the caller's investments
// GET /api/v1/investments
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	investments, err := h.investmentUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, investments)
}
