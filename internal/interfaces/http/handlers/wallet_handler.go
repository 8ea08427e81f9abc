package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"valora.backend/internal/domain/entities"
	"valora.backend/internal/interfaces/http/response"
)

type walletService interface {
	ListActive(ctx context.Context) ([]*entities.CompanyWallet, error)
}

// WalletHandler handles company wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase walletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// List returns the active receiving wallets
// GET /api/v1/wallets
func (h *WalletHandler) List(c *gin.Context) {
	wallets, err := h.walletUsecase.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, wallets)
}
