package challenge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/memory"
)

// captureSink records published reward events.
type captureSink struct {
	events []shared.Event
}

func (s *captureSink) Publish(event shared.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) typesSeen() []shared.EventType {
	out := make([]shared.EventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType())
	}
	return out
}

func catalogDrink(t *testing.T, id string) *intake.Drink {
	t.Helper()
	for _, d := range intake.DefaultCatalog() {
		if d.ID == id {
			cp := d
			return &cp
		}
	}
	t.Fatalf("drink %s not in default catalog", id)
	return nil
}

func newEngine(t *testing.T) (*challenge.Engine, *memory.ChallengeStore, *captureSink) {
	t.Helper()
	store := memory.NewChallengeStore()
	sink := &captureSink{}
	return challenge.NewEngine(store, sink, time.UTC), store, sink
}

func TestStart(t *testing.T) {
	engine, _, sink := newEngine(t)

	c, err := engine.Start(context.Background(), challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	assert.Equal(t, challenge.StatusActive, c.Status)
	assert.Equal(t, 14, c.DurationDays())
	assert.Contains(t, sink.typesSeen(), shared.EventChallengeStarted)
}

func TestStart_OneActivePerType(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Start(ctx, challenge.TypeNoAlcohol, time.Now())
	require.NoError(t, err)

	_, err = engine.Start(ctx, challenge.TypeNoAlcohol, time.Now())
	assert.ErrorIs(t, err, shared.ErrChallengeTypeActive)

	// A different type is unaffected.
	_, err = engine.Start(ctx, challenge.TypeNoSoda, time.Now())
	assert.NoError(t, err)
}

func TestOnIntakeLogged_Violation(t *testing.T) {
	engine, store, sink := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	coffee := catalogDrink(t, "drink-coffee")
	event, err := intake.NewIntakeEvent(coffee.ID, 250, time.Now())
	require.NoError(t, err)

	violated, err := engine.OnIntakeLogged(ctx, event, coffee)
	require.NoError(t, err)
	require.Len(t, violated, 1)
	assert.Equal(t, c.ID, violated[0].ID)
	assert.Equal(t, challenge.StatusViolated, violated[0].Status)
	require.Len(t, violated[0].Violations, 1)
	assert.Equal(t, "Coffee", violated[0].Violations[0].DrinkName)
	assert.Contains(t, sink.typesSeen(), shared.EventChallengeViolated)

	// The violated challenge stays violated in the store.
	stored, err := store.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, challenge.StatusViolated, stored.Status)
}

func TestOnIntakeLogged_HarmlessDrink(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Start(ctx, challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	water := catalogDrink(t, "drink-water")
	event, err := intake.NewIntakeEvent(water.ID, 500, time.Now())
	require.NoError(t, err)

	violated, err := engine.OnIntakeLogged(ctx, event, water)
	require.NoError(t, err)
	assert.Empty(t, violated)
}

func TestOnIntakeLogged_RedeliveryIsIdempotent(t *testing.T) {
	engine, store, _ := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypeNoSugar, time.Now())
	require.NoError(t, err)

	water := catalogDrink(t, "drink-water")
	event, err := intake.NewIntakeEvent(water.ID, 500, time.Now())
	require.NoError(t, err)

	_, err = engine.OnIntakeLogged(ctx, event, water)
	require.NoError(t, err)

	// The pair is marked; a redelivered event is not evaluated again even
	// if the drink payload somehow differs.
	fresh, err := store.MarkEvaluated(ctx, c.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, fresh)

	juice := catalogDrink(t, "drink-juice")
	juiceEvent := *event
	violated, err := engine.OnIntakeLogged(ctx, &juiceEvent, juice)
	require.NoError(t, err)
	assert.Empty(t, violated, "redelivered event id must not violate")
}

func TestOnIntakeLogged_OutsideWindow(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Start(ctx, challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	coffee := catalogDrink(t, "drink-coffee")
	event, err := intake.NewIntakeEvent(coffee.ID, 250, time.Now().AddDate(0, 0, -2))
	require.NoError(t, err)

	violated, err := engine.OnIntakeLogged(ctx, event, coffee)
	require.NoError(t, err)
	assert.Empty(t, violated, "events before the start date are out of scope")
}

func TestComplete_BeforeEndDate(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	_, err = engine.Complete(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrChallengeNotFinished)
}

func TestComplete_FlawlessRun(t *testing.T) {
	engine, _, sink := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypeNoCaffeine, time.Now().AddDate(0, 0, -15))
	require.NoError(t, err)

	result, err := engine.Complete(ctx, c.ID)
	require.NoError(t, err)

	assert.Equal(t, c.ID, result.ChallengeID)
	assert.Equal(t, 14, result.DurationDays)
	assert.Equal(t, 140, result.XPReward)
	assert.Equal(t, "NO_CAFFEINE_CHAMPION", result.EligibleAchievement)
	assert.Contains(t, sink.typesSeen(), shared.EventChallengeCompleted)

	// Completion is terminal.
	_, err = engine.Complete(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrChallengeNotActive)
}

func TestComplete_ShortChallengeHasNoChampion(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypePlantBasedOnly, time.Now().AddDate(0, 0, -8))
	require.NoError(t, err)

	result, err := engine.Complete(ctx, c.ID)
	require.NoError(t, err)

	assert.Equal(t, 70, result.XPReward)
	assert.Empty(t, result.EligibleAchievement, "7-day runs never qualify for a champion achievement")
}

func TestAbandon(t *testing.T) {
	engine, store, sink := newEngine(t)
	ctx := context.Background()

	c, err := engine.Start(ctx, challenge.TypeNoDairy, time.Now())
	require.NoError(t, err)

	require.NoError(t, engine.Abandon(ctx, c.ID))

	stored, err := store.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, challenge.StatusAbandoned, stored.Status)
	assert.Contains(t, sink.typesSeen(), shared.EventChallengeAbandoned)

	assert.ErrorIs(t, engine.Abandon(ctx, c.ID), shared.ErrChallengeNotActive)
	_, err = engine.Complete(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrChallengeNotActive)

	// The slot is free for a new run.
	_, err = engine.Start(ctx, challenge.TypeNoDairy, time.Now())
	assert.NoError(t, err)
}

func TestAbandon_Unknown(t *testing.T) {
	engine, _, _ := newEngine(t)
	assert.ErrorIs(t, engine.Abandon(context.Background(), "missing"), shared.ErrChallengeNotFound)
}

func TestTypeViolates(t *testing.T) {
	milk := catalogDrink(t, "drink-milk")
	plantMilk := catalogDrink(t, "drink-plant-milk")
	soda := catalogDrink(t, "drink-soda")
	water := catalogDrink(t, "drink-water")

	assert.True(t, challenge.TypeNoDairy.Violates(milk))
	assert.False(t, challenge.TypeNoDairy.Violates(plantMilk))
	assert.True(t, challenge.TypePlantBasedOnly.Violates(milk))
	assert.False(t, challenge.TypePlantBasedOnly.Violates(water))
	assert.True(t, challenge.TypeNoSoda.Violates(soda))
	assert.True(t, challenge.TypeNoSugar.Violates(soda))

	// Unknown stored types run but never violate.
	unknown := challenge.ParseType("no_gluten")
	assert.Equal(t, challenge.Type("NO_GLUTEN"), unknown)
	assert.False(t, unknown.Violates(soda))
	assert.Equal(t, 7, unknown.DurationDays())
}
