package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/internal/interfaces/http/response"
)

// ContactHandler handles the public contact form
type ContactHandler struct {
	notifier notifications.Notifier
}

// NewContactHandler creates a new contact handler
func NewContactHandler(notifier notifications.Notifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

type contactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit relays a contact form message
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	err := h.notifier.Send(c.Request.Context(), notifications.TemplateContact, input.Email, map[string]string{
		"sender_name": input.Name,
		"reply_to":    input.Email,
		"message":     input.Message,
	})
	if err != nil {
		response.Error(c, domainerrors.InternalError(err))
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"delivered": true})
}
