package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedCurrency = errors.New("deposits temporarily unavailable for this currency")
	ErrKycNotApproved      = errors.New("identity verification not approved")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrAlreadyExists)
}

// KycNotApproved is raised when a money movement is attempted before
// identity verification has been approved
func KycNotApproved() *AppError {
	return NewAppError(http.StatusForbidden, "identity verification required", ErrKycNotApproved)
}

// InsufficientFunds is raised when a debit exceeds the available balance
func InsufficientFunds() *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "insufficient balance", ErrInsufficientFunds)
}

// UnsupportedCurrency is the user-visible condition raised when no
// active company wallet exists for the requested currency
func UnsupportedCurrency(currency string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "deposits temporarily unavailable for "+currency, ErrUnsupportedCurrency)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
