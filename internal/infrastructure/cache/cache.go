package cache

import (
	"context"
	"errors"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/google/uuid"
)

var (
	// ErrCacheMiss is returned when no report is stored for the owner
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleReport is returned by Set when the owner's sales changed after
	// the report's generation was read
	ErrStaleReport = errors.New("report generation is stale")
)

// ReportCache stores the computed analytics report per shop owner. Every
// Delete bumps the owner's generation, and Set only stores a report built
// under the current generation, so a report computed from sales read before
// a change never outlives the invalidation.
type ReportCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*analytics.Report, error)
	Generation(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Set(ctx context.Context, ownerID uuid.UUID, generation int64, report *analytics.Report) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// NopCache never stores anything. Used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, uuid.UUID) (*analytics.Report, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (NopCache) Set(context.Context, uuid.UUID, int64, *analytics.Report) error { return nil }

func (NopCache) Delete(context.Context, uuid.UUID) error { return nil }
