package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/events"
	"github.com/ecompjr/company-service/internal/service"
)

// invalidateAttempts bounds retries of a failed eviction. The dispatcher runs
// handlers inline, so retries add to the writing request's latency.
const invalidateAttempts = 2

// StartCacheInvalidation registers handlers that evict a company's cache
// entry whenever it is updated or deleted. Handlers run before the write
// request returns. If every attempt fails the entry may be served stale
// until its TTL (COMPANY_CACHE_TTL_SECONDS) expires.
func StartCacheInvalidation(dispatcher events.Dispatcher, cache service.CompanyCache, logger *zap.Logger) {
	if dispatcher == nil || cache == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	evict := func(ctx context.Context, event events.Event) error {
		var err error
		for attempt := 1; attempt <= invalidateAttempts; attempt++ {
			if err = cache.Invalidate(ctx, event.CompanyID); err == nil {
				logger.Debug("company cache entry evicted",
					zap.Int64("company_id", event.CompanyID),
					zap.String("event_type", string(event.Type)),
					zap.Int("attempt", attempt))
				return nil
			}
		}
		logger.Error("company cache eviction failed, entry may be stale until ttl",
			zap.Int64("company_id", event.CompanyID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return fmt.Errorf("evict company %d: %w", event.CompanyID, err)
	}
	dispatcher.Subscribe(events.EventCompanyUpdated, evict)
	dispatcher.Subscribe(events.EventCompanyDeleted, evict)
}
