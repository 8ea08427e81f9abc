package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "valora.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWithMeta sends a paginated success response
func SuccessWithMeta(c *gin.Context, status int, data interface{}, meta interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

// Error sends an error response derived from the error's type
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			appErr = domainerrors.NotFound("resource not found")
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			appErr = domainerrors.Conflict("resource already exists")
		default:
			appErr = domainerrors.InternalError(err)
		}
	}

	c.JSON(appErr.Code, gin.H{
		"success": false,
		"error":   appErr.Message,
	})
}
