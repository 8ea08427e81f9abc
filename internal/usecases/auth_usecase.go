package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
	"valora.backend/internal/domain/repositories"
	"valora.backend/internal/infrastructure/notifications"
	"valora.backend/pkg/crypto"
	"valora.backend/pkg/jwt"
	"valora.backend/pkg/logger"
)

// AuthUsecase handles registration and login
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.Service
	notifier   notifications.Notifier
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.Service, notifier notifications.Notifier) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		notifier:   notifier,
	}
}

// AuthResult carries the authenticated user and their session token
type AuthResult struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// Register creates a new account with a pending KYC status
func (u *AuthUsecase) Register(ctx context.Context, input entities.RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.Conflict("an account with this email already exists")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		KycStatus:    entities.KycStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := u.notifier.Send(ctx, notifications.TemplateWelcome, user.Email, map[string]string{
		"user_name": user.FirstName,
	}); err != nil {
		logger.Warn(ctx, "welcome notification failed", zap.Error(err))
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates an existing account
func (u *AuthUsecase) Login(ctx context.Context, input entities.LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
