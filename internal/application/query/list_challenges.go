package query

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// ChallengeView decorates a challenge with derived day counters. The day
// counters are informational only and recomputed on every read.
type ChallengeView struct {
	Challenge     *challenge.Challenge
	DaysElapsed   int
	DaysRemaining int
}

// ListChallengesHandler serves the challenge overview.
type ListChallengesHandler struct {
	store challenge.Store
	loc   *time.Location
}

// NewListChallengesHandler creates the handler.
func NewListChallengesHandler(store challenge.Store, loc *time.Location) *ListChallengesHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ListChallengesHandler{store: store, loc: loc}
}

// Handle returns all challenges, newest first.
func (h *ListChallengesHandler) Handle(ctx context.Context) ([]ChallengeView, error) {
	challenges, err := h.store.List(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "ListChallenges", shared.ErrPersistence, "list challenges", err)
	}

	today := timeutil.StartOfDay(time.Now(), h.loc)
	views := make([]ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		view := ChallengeView{Challenge: c}
		elapsed := timeutil.DaysBetween(c.StartDate, today, h.loc)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > c.DurationDays() {
			elapsed = c.DurationDays()
		}
		view.DaysElapsed = elapsed
		view.DaysRemaining = c.DurationDays() - elapsed
		views = append(views, view)
	}
	return views, nil
}
