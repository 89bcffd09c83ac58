package repository

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/google/uuid"
)

// UserRepository persists profiles
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByCustomerCode matches the code case-insensitively
	GetByCustomerCode(ctx context.Context, code string) (*entity.User, error)
	GetByCustomerCodes(ctx context.Context, codes []string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
