package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/cache"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
)

const publishTimeout = 3 * time.Second

// SaleNotifier runs the side effects of a committed sale change: report cache
// invalidation, event publishing and metrics. Failures are logged and never
// reach the caller.
type SaleNotifier struct {
	cache     cache.ReportCache
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewSaleNotifier creates a sale notifier. Nil collaborators are replaced by no-ops.
func NewSaleNotifier(reportCache cache.ReportCache, publisher events.Publisher, m *metrics.Metrics) *SaleNotifier {
	if reportCache == nil {
		reportCache = cache.NopCache{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SaleNotifier{cache: reportCache, publisher: publisher, metrics: m}
}

// Notify reports that sale changed in the way eventType describes
func (n *SaleNotifier) Notify(ctx context.Context, eventType string, sale *entity.Sale) {
	if n == nil {
		return
	}
	// the request may already be finishing; side effects must still run
	ctx = context.WithoutCancel(ctx)

	if err := n.cache.Delete(ctx, sale.ShopOwnerID); err != nil {
		slog.Warn("report cache invalidation failed", "shop_owner_id", sale.ShopOwnerID, "error", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.publisher.Publish(pubCtx, events.NewSaleEvent(eventType, sale)); err != nil {
		n.metrics.EventPublishFailed()
		slog.Warn("sale event publish failed", "event_type", eventType, "sale_id", sale.ID, "error", err)
	}

	if eventType == events.TypeSaleCreated {
		n.metrics.SaleCreated(sale.TotalAmount)
	}
}
