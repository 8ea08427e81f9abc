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
	"valora.backend/pkg/utils"
)

type profileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.UserBalance, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int, error)
}

// UserHandler handles profile endpoints
type UserHandler struct {
	userUsecase profileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase profileService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Profile returns the caller's account
// GET /api/v1/users/me
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Balance returns the caller's balance rollup
// GET /api/v1/users/me/balance
func (h *UserHandler) Balance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	balance, err := h.userUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, balance)
}

// Transactions returns the caller's ledger entries
// GET /api/v1/users/me/transactions
func (h *UserHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	transactions, total, err := h.userUsecase.ListTransactions(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, transactions, utils.CalculateMeta(int64(total), page, limit))
}
