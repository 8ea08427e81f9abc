package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/interfaces/http/response"
	"valora.backend/pkg/utils"
)

type adminUserService interface {
	ListUsers(ctx context.Context, page, limit int) ([]*entities.User, int, error)
	ReviewKyc(ctx context.Context, id uuid.UUID, status entities.KycStatus) (*entities.User, error)
}

type adminDepositService interface {
	ListAll(ctx context.Context, page, limit int) ([]*entities.PaymentTracking, int, error)
	ManuallyConfirm(ctx context.Context, id uuid.UUID, txHash string, confirmations int) (*entities.PaymentTracking, error)
}

type adminWalletService interface {
	Upsert(ctx context.Context, input entities.UpsertWalletInput) (*entities.CompanyWallet, error)
}

type adminWithdrawalService interface {
	ListAll(ctx context.Context, page, limit int) ([]*entities.WithdrawalRequest, int, error)
	Complete(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	Fail(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
}

type reconcileRunner interface {
	Reconcile(ctx context.Context) error
}

// AdminHandler handles back-office endpoints
type AdminHandler struct {
	userUsecase       adminUserService
	depositUsecase    adminDepositService
	walletUsecase     adminWalletService
	withdrawalUsecase adminWithdrawalService
	reconciler        reconcileRunner
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userUsecase adminUserService,
	depositUsecase adminDepositService,
	walletUsecase adminWalletService,
	withdrawalUsecase adminWithdrawalService,
	reconciler reconcileRunner,
) *AdminHandler {
	return &AdminHandler{
		userUsecase:       userUsecase,
		depositUsecase:    depositUsecase,
		walletUsecase:     walletUsecase,
		withdrawalUsecase: withdrawalUsecase,
		reconciler:        reconciler,
	}
}

// ListUsers returns all accounts
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, users, utils.CalculateMeta(int64(total), page, limit))
}

type reviewKycInput struct {
	Status string `json:"status" binding:"required"`
}

// ReviewKyc sets a user's identity verification status
// PATCH /api/v1/admin/users/:id/kyc
func (h *AdminHandler) ReviewKyc(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var input reviewKycInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userUsecase.ReviewKyc(c.Request.Context(), id, entities.KycStatus(input.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ListDeposits returns all tracked deposits
// GET /api/v1/admin/deposits
func (h *AdminHandler) ListDeposits(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	deposits, total, err := h.depositUsecase.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, deposits, utils.CalculateMeta(int64(total), page, limit))
}

type manualConfirmInput struct {
	TxHash        string `json:"txHash" binding:"required"`
	Confirmations int    `json:"confirmations"`
}

// ConfirmDeposit marks a deposit confirmed with operator-supplied evidence
// POST /api/v1/admin/deposits/:id/confirm
func (h *AdminHandler) ConfirmDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid deposit id"))
		return
	}

	var input manualConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tracking, err := h.depositUsecase.ManuallyConfirm(c.Request.Context(), id, input.TxHash, input.Confirmations)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tracking)
}

// UpsertWallet sets the receiving wallet for a currency
// PUT /api/v1/admin/wallets
func (h *AdminHandler) UpsertWallet(c *gin.Context) {
	var input entities.UpsertWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.walletUsecase.Upsert(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, wallet)
}

// ListWithdrawals returns all withdrawal requests
// GET /api/v1/admin/withdrawals
func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	withdrawals, total, err := h.withdrawalUsecase.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, withdrawals, utils.CalculateMeta(int64(total), page, limit))
}

// CompleteWithdrawal settles a pending withdrawal
// POST /api/v1/admin/withdrawals/:id/complete
func (h *AdminHandler) CompleteWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid withdrawal id"))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Complete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, withdrawal)
}

// TriggerReconcile runs one reconciliation pass on demand, outside the
// monitor's schedule
// POST /api/v1/admin/reconcile
func (h *AdminHandler) TriggerReconcile(c *gin.Context) {
	if err := h.reconciler.Reconcile(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reconciled": true})
}

// FailWithdrawal rejects a pending withdrawal
// POST /api/v1/admin/withdrawals/:id/fail
func (h *AdminHandler) FailWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid withdrawal id"))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Fail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, withdrawal)
}
