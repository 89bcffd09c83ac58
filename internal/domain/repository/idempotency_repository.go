package repository

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository stores replayable responses keyed by client key and user
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired keys and reports how many were removed
	DeleteExpired(ctx context.Context) (int64, error)
}
