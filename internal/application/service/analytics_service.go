package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/analytics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/cache"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"golang.org/x/sync/singleflight"
)

// AnalyticsService builds the shop owner's analytics report. Reports are
// cached per owner until the next sale change or the end of the local day.
type AnalyticsService struct {
	saleRepo repository.SaleRepository
	cache    cache.ReportCache
	metrics  *metrics.Metrics
	loc      *time.Location
	group    singleflight.Group
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service. A nil location means UTC.
func NewAnalyticsService(
	saleRepo repository.SaleRepository,
	reportCache cache.ReportCache,
	m *metrics.Metrics,
	loc *time.Location,
) *AnalyticsService {
	if reportCache == nil {
		reportCache = cache.NopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		saleRepo: saleRepo,
		cache:    reportCache,
		metrics:  m,
		loc:      loc,
		now:      time.Now,
	}
}

// Report returns the analytics report for the shop owner in ctx
func (s *AnalyticsService) Report(ctx context.Context) (*analytics.Report, error) {
	ownerID, ok := infraRepo.GetShopOwnerID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop owner context required")
	}

	now := s.now().In(s.loc)
	cached, err := s.cache.Get(ctx, ownerID)
	switch {
	case err == nil && cached.Day == now.Format(time.DateOnly):
		s.metrics.ReportCacheHit()
		return cached, nil
	case err != nil && !errors.Is(err, cache.ErrCacheMiss):
		slog.WarnContext(ctx, "report cache read failed", "shop_owner_id", ownerID, "error", err)
	}
	s.metrics.ReportCacheMiss()

	// the generation is read before the sales so a change committed while the
	// report is built makes the cache refuse it
	generation, err := s.cache.Generation(ctx, ownerID)
	cacheable := err == nil
	if err != nil {
		slog.WarnContext(ctx, "report cache generation read failed", "shop_owner_id", ownerID, "error", err)
	}

	// concurrent requests for the same owner and generation share one fetch
	key := fmt.Sprintf("%s:%d", ownerID, generation)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		sales, err := s.saleRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, err
		}
		report := analytics.BuildReport(sales, now)
		if !cacheable {
			return report, nil
		}
		err = s.cache.Set(context.WithoutCancel(ctx), ownerID, generation, report)
		switch {
		case errors.Is(err, cache.ErrStaleReport):
			slog.DebugContext(ctx, "sales changed while building report, not cached", "shop_owner_id", ownerID)
		case err != nil:
			slog.WarnContext(ctx, "report cache write failed", "shop_owner_id", ownerID, "error", err)
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analytics.Report), nil
}
