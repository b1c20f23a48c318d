package redis

import (
	"context"
	"errors"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// progressKeyPrefix namespaces daily progress keys.
const progressKeyPrefix = "hydration:progress:"

// DefaultProgressTTL bounds staleness when an invalidation is lost.
const DefaultProgressTTL = 10 * time.Minute

// ══════════════════════════════════════════════════════════════════════════════
// DAILY PROGRESS CACHE
// ══════════════════════════════════════════════════════════════════════════════

// ProgressCache caches computed daily progress per calendar day. It serves
// reads for query handlers and invalidation for intake commands; the
// aggregator stays the source of truth.
type ProgressCache struct {
	cache *Cache
	loc   *time.Location
	ttl   time.Duration
}

// NewProgressCache creates a progress cache. A zero ttl uses DefaultProgressTTL.
func NewProgressCache(cache *Cache, loc *time.Location, ttl time.Duration) *ProgressCache {
	if loc == nil {
		loc = time.UTC
	}
	if ttl <= 0 {
		ttl = DefaultProgressTTL
	}
	return &ProgressCache{cache: cache, loc: loc, ttl: ttl}
}

// GetDailyProgress returns the cached progress for the day containing date.
// The boolean is false on a miss.
func (p *ProgressCache) GetDailyProgress(ctx context.Context, date time.Time) (hydration.DailyProgress, bool, error) {
	var progress hydration.DailyProgress
	err := p.cache.Get(ctx, p.key(date), &progress)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return hydration.DailyProgress{}, false, nil
		}
		return hydration.DailyProgress{}, false, err
	}
	return progress, true, nil
}

// SetDailyProgress caches the progress under its own day key.
func (p *ProgressCache) SetDailyProgress(ctx context.Context, progress hydration.DailyProgress) error {
	return p.cache.Set(ctx, p.key(progress.Date), progress, p.ttl)
}

// InvalidateDay drops the cached figures for the day containing date.
// Called whenever an intake event for that day is logged or deleted.
func (p *ProgressCache) InvalidateDay(ctx context.Context, date time.Time) error {
	return p.cache.Delete(ctx, p.key(date))
}

func (p *ProgressCache) key(date time.Time) string {
	return progressKeyPrefix + timeutil.DayKey(date, p.loc)
}
