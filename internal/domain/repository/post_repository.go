package repository

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// PostRepository persists community feed posts. The feed is shared by all users.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	List(ctx context.Context, params *pagination.PaginationParams, tag string) ([]entity.Post, int64, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) error
}
