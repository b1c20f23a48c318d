package challenge

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// CompletionResult reports what a successful completion earned. The caller
// applies the XP reward; challenges of 14 days or longer also make a
// champion achievement eligible.
type CompletionResult struct {
	ChallengeID         string
	Type                Type
	DurationDays        int
	XPReward            int
	EligibleAchievement string // "" when the run is too short or not flawless
}

// Engine drives the challenge lifecycle. Reward events go through the sink
// fire-and-forget; a failed publish never fails the operation.
type Engine struct {
	store Store
	sink  shared.RewardSink
	loc   *time.Location
}

// NewEngine creates a challenge engine.
func NewEngine(store Store, sink shared.RewardSink, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{store: store, sink: sink, loc: loc}
}

// Start activates a new challenge of the given type beginning on the
// calendar day of startDate. At most one active challenge per type.
func (e *Engine) Start(ctx context.Context, t Type, startDate time.Time) (*Challenge, error) {
	_, err := e.store.FindActiveByType(ctx, t)
	switch {
	case err == nil:
		return nil, shared.ErrChallengeTypeActive
	case !shared.IsNotFound(err):
		return nil, shared.WrapError("challenge", "Start", shared.ErrPersistence, "lookup active challenge", err)
	}

	c := NewChallenge(t, startDate, e.loc)
	if err := e.store.Create(ctx, c); err != nil {
		if shared.IsConflict(err) {
			return nil, shared.ErrChallengeTypeActive
		}
		return nil, shared.WrapError("challenge", "Start", shared.ErrPersistence, "persist challenge", err)
	}

	_ = e.sink.Publish(shared.NewChallengeStartedEvent(c.ID, string(c.Type), c.StartDate, c.EndDate))
	return c, nil
}

// OnIntakeLogged evaluates one intake event against every active challenge.
// Each (challenge, event) pair is evaluated at most once, so redelivery is
// idempotent; a violated challenge is never evaluated again.
func (e *Engine) OnIntakeLogged(ctx context.Context, event *intake.IntakeEvent, drink *intake.Drink) ([]*Challenge, error) {
	active, err := e.store.ListActive(ctx)
	if err != nil {
		return nil, shared.WrapError("challenge", "OnIntakeLogged", shared.ErrPersistence, "list active challenges", err)
	}

	var violated []*Challenge
	for _, c := range active {
		if !c.Covers(event.Timestamp) {
			continue
		}
		fresh, err := e.store.MarkEvaluated(ctx, c.ID, event.ID)
		if err != nil {
			return violated, shared.WrapError("challenge", "OnIntakeLogged", shared.ErrPersistence, "mark evaluated", err)
		}
		if !fresh {
			continue
		}
		if !c.Type.Violates(drink) {
			continue
		}
		if err := c.Violate(event.Timestamp, drink.Name, drink.Icon); err != nil {
			continue
		}
		if err := e.store.Update(ctx, c); err != nil {
			return violated, shared.WrapError("challenge", "OnIntakeLogged", shared.ErrPersistence, "persist violation", err)
		}
		_ = e.sink.Publish(shared.NewChallengeViolatedEvent(c.ID, string(c.Type), drink.Name, drink.Icon, event.Timestamp))
		violated = append(violated, c)
	}
	return violated, nil
}

// Complete finishes an active challenge whose end date has been reached.
func (e *Engine) Complete(ctx context.Context, id string) (*CompletionResult, error) {
	c, err := e.store.Get(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrChallengeNotFound
		}
		return nil, shared.WrapError("challenge", "Complete", shared.ErrPersistence, "load challenge", err)
	}
	if c.Status != StatusActive {
		return nil, shared.ErrChallengeNotActive
	}
	today := timeutil.StartOfDay(time.Now(), e.loc)
	if today.Before(c.EndDate) {
		return nil, shared.ErrChallengeNotFinished
	}

	if err := c.MarkCompleted(); err != nil {
		return nil, err
	}
	if err := e.store.Update(ctx, c); err != nil {
		return nil, shared.WrapError("challenge", "Complete", shared.ErrPersistence, "persist completion", err)
	}

	result := &CompletionResult{
		ChallengeID:  c.ID,
		Type:         c.Type,
		DurationDays: c.DurationDays(),
		XPReward:     c.Type.XPReward(),
	}
	if c.IsFlawless() {
		result.EligibleAchievement = c.Type.ChampionAchievement()
	}

	_ = e.sink.Publish(shared.NewChallengeCompletedEvent(c.ID, string(c.Type), result.DurationDays, result.XPReward))
	return result, nil
}

// Abandon ends an active challenge without reward.
func (e *Engine) Abandon(ctx context.Context, id string) error {
	c, err := e.store.Get(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.ErrChallengeNotFound
		}
		return shared.WrapError("challenge", "Abandon", shared.ErrPersistence, "load challenge", err)
	}
	if err := c.MarkAbandoned(); err != nil {
		return err
	}
	if err := e.store.Update(ctx, c); err != nil {
		return shared.WrapError("challenge", "Abandon", shared.ErrPersistence, "persist abandon", err)
	}
	_ = e.sink.Publish(shared.NewChallengeAbandonedEvent(c.ID, string(c.Type)))
	return nil
}
