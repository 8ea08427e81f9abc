package repositories

import (
	"context"

	"github.com/google/uuid"
	"valora.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	UpdateKycStatus(ctx context.Context, id uuid.UUID, status entities.KycStatus) error
}
