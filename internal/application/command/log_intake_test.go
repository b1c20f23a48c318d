package command_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/application/command"
	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/memory"
)

type captureSink struct {
	events []shared.Event
}

func (s *captureSink) Publish(event shared.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) has(t shared.EventType) bool {
	for _, e := range s.events {
		if e.EventType() == t {
			return true
		}
	}
	return false
}

type fakeInvalidator struct {
	days []time.Time
}

func (f *fakeInvalidator) InvalidateDay(_ context.Context, date time.Time) error {
	f.days = append(f.days, date)
	return nil
}

type appFixture struct {
	handler     *command.LogIntakeHandler
	intakes     *memory.IntakeStore
	challenges  *challenge.Engine
	ledger      *profile.Ledger
	sink        *captureSink
	invalidator *fakeInvalidator
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	intakes := memory.NewIntakeStore()
	catalog := memory.NewDrinkCatalog()
	settings := memory.NewSettingsStore()
	challengeStore := memory.NewChallengeStore()
	sink := &captureSink{}
	invalidator := &fakeInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	aggregator := hydration.NewAggregator(intakes, catalog, settings, hydration.DefaultConfig(), time.UTC)
	ledger := profile.NewLedger(memory.NewProfileStore(), sink)
	challengeEngine := challenge.NewEngine(challengeStore, sink, time.UTC)
	achievementEngine := achievement.NewEngine(
		memory.NewAchievementStore(),
		aggregator,
		intakes,
		settings,
		challengeStore,
		ledger,
		memory.NewUnitOfWork(),
		sink,
		time.UTC,
		logger,
	)

	handler := command.NewLogIntakeHandler(
		intakes, catalog, aggregator, challengeEngine, achievementEngine, ledger, sink, invalidator, logger,
	)
	return &appFixture{
		handler:     handler,
		intakes:     intakes,
		challenges:  challengeEngine,
		ledger:      ledger,
		sink:        sink,
		invalidator: invalidator,
	}
}

func TestLogIntake(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	result, err := f.handler.Handle(ctx, command.LogIntakeCommand{
		DrinkID:  "drink-water",
		AmountMl: 2000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.IntakeID)
	assert.True(t, result.DailyProgress.GoalMet)
	assert.Empty(t, result.ViolatedChallenges)
	assert.True(t, f.sink.has(shared.EventIntakeLogged))
	require.Len(t, f.invalidator.days, 1)

	// The entry is durable and the drink counted.
	_, err = f.intakes.Get(ctx, result.IntakeID)
	require.NoError(t, err)
	p, err := f.ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalDrinksLogged)
	assert.Equal(t, []string{"Water"}, p.UniqueDrinks)
}

func TestLogIntake_ViolatesActiveChallenge(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	_, err := f.challenges.Start(ctx, challenge.TypeNoCaffeine, time.Now())
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, command.LogIntakeCommand{
		DrinkID:  "drink-coffee",
		AmountMl: 250,
	})
	require.NoError(t, err)

	require.Len(t, result.ViolatedChallenges, 1)
	assert.Equal(t, challenge.StatusViolated, result.ViolatedChallenges[0].Status)
	assert.True(t, f.sink.has(shared.EventChallengeViolated))
}

func TestLogIntake_UnknownDrink(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.handler.Handle(context.Background(), command.LogIntakeCommand{
		DrinkID:  "drink-mystery",
		AmountMl: 200,
	})
	assert.ErrorIs(t, err, shared.ErrDrinkNotFound)
}

func TestLogIntake_Validation(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	_, err := f.handler.Handle(ctx, command.LogIntakeCommand{DrinkID: "drink-water", AmountMl: 0})
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)

	_, err = f.handler.Handle(ctx, command.LogIntakeCommand{AmountMl: 200})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteIntake(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deleter := command.NewDeleteIntakeHandler(f.intakes, f.sink, f.invalidator, logger)

	logged, err := f.handler.Handle(ctx, command.LogIntakeCommand{DrinkID: "drink-water", AmountMl: 300})
	require.NoError(t, err)

	require.NoError(t, deleter.Handle(ctx, command.DeleteIntakeCommand{IntakeID: logged.IntakeID}))
	assert.True(t, f.sink.has(shared.EventIntakeDeleted))

	_, err = f.intakes.Get(ctx, logged.IntakeID)
	assert.ErrorIs(t, err, shared.ErrIntakeNotFound)

	// Deleting again reports the missing entry.
	err = deleter.Handle(ctx, command.DeleteIntakeCommand{IntakeID: logged.IntakeID})
	assert.ErrorIs(t, err, shared.ErrIntakeNotFound)
}
