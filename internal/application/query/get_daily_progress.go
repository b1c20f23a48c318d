// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
)

// DailyProgressCache is a read-through cache for hot daily figures. The
// boolean result distinguishes a miss from a cached zero value.
type DailyProgressCache interface {
	GetDailyProgress(ctx context.Context, date time.Time) (hydration.DailyProgress, bool, error)
	SetDailyProgress(ctx context.Context, progress hydration.DailyProgress) error
}

// GetDailyProgressHandler serves the daily progress view.
type GetDailyProgressHandler struct {
	aggregator *hydration.Aggregator
	cache      DailyProgressCache
	logger     *slog.Logger
}

// NewGetDailyProgressHandler creates the handler. The cache is optional.
func NewGetDailyProgressHandler(aggregator *hydration.Aggregator, cache DailyProgressCache, logger *slog.Logger) *GetDailyProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetDailyProgressHandler{aggregator: aggregator, cache: cache, logger: logger}
}

// Handle returns the progress for the calendar day containing date. Cache
// failures degrade to a recompute, never to an error.
func (h *GetDailyProgressHandler) Handle(ctx context.Context, date time.Time) (hydration.DailyProgress, error) {
	if h.cache != nil {
		cached, ok, err := h.cache.GetDailyProgress(ctx, date)
		if err != nil {
			h.logger.Warn("progress cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	progress, err := h.aggregator.DailyProgress(ctx, date)
	if err != nil {
		return hydration.DailyProgress{}, err
	}

	if h.cache != nil {
		if err := h.cache.SetDailyProgress(ctx, progress); err != nil {
			h.logger.Warn("progress cache write failed", slog.String("error", err.Error()))
		}
	}
	return progress, nil
}
