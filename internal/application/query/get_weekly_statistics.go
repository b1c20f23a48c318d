package query

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// GetWeeklyStatisticsHandler serves the 7-day statistics view.
type GetWeeklyStatisticsHandler struct {
	aggregator *hydration.Aggregator
}

// NewGetWeeklyStatisticsHandler creates the handler.
func NewGetWeeklyStatisticsHandler(aggregator *hydration.Aggregator) *GetWeeklyStatisticsHandler {
	return &GetWeeklyStatisticsHandler{aggregator: aggregator}
}

// Handle returns statistics for the week starting at weekStart. A zero
// weekStart selects the current calendar week.
func (h *GetWeeklyStatisticsHandler) Handle(ctx context.Context, weekStart time.Time) (hydration.WeeklyStatistics, error) {
	if weekStart.IsZero() {
		weekStart = timeutil.StartOfWeek(time.Now(), h.aggregator.Location())
	}
	return h.aggregator.WeeklyStatistics(ctx, weekStart)
}
