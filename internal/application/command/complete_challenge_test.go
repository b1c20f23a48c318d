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

type challengeFixture struct {
	start    *command.StartChallengeHandler
	complete *command.CompleteChallengeHandler
	abandon  *command.AbandonChallengeHandler
	engine   *challenge.Engine
	ledger   *profile.Ledger
}

func newChallengeFixture(t *testing.T) *challengeFixture {
	t.Helper()

	intakes := memory.NewIntakeStore()
	settings := memory.NewSettingsStore()
	challengeStore := memory.NewChallengeStore()
	sink := &captureSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	aggregator := hydration.NewAggregator(intakes, memory.NewDrinkCatalog(), settings, hydration.DefaultConfig(), time.UTC)
	ledger := profile.NewLedger(memory.NewProfileStore(), sink)
	engine := challenge.NewEngine(challengeStore, sink, time.UTC)
	achievements := achievement.NewEngine(
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

	return &challengeFixture{
		start:    command.NewStartChallengeHandler(engine, logger),
		complete: command.NewCompleteChallengeHandler(engine, ledger, achievements, logger),
		abandon:  command.NewAbandonChallengeHandler(engine, logger),
		engine:   engine,
		ledger:   ledger,
	}
}

func TestStartChallenge(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	c, err := f.start.Handle(ctx, command.StartChallengeCommand{Type: "no_caffeine"})
	require.NoError(t, err)
	assert.Equal(t, challenge.TypeNoCaffeine, c.Type)
	assert.Equal(t, challenge.StatusActive, c.Status)

	_, err = f.start.Handle(ctx, command.StartChallengeCommand{Type: "NO_CAFFEINE"})
	assert.ErrorIs(t, err, shared.ErrChallengeTypeActive)

	_, err = f.start.Handle(ctx, command.StartChallengeCommand{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCompleteChallenge_AwardsXPAndChampion(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	c, err := f.engine.Start(ctx, challenge.TypeNoCaffeine, time.Now().AddDate(0, 0, -15))
	require.NoError(t, err)

	result, err := f.complete.Handle(ctx, command.CompleteChallengeCommand{ChallengeID: c.ID})
	require.NoError(t, err)

	assert.Equal(t, 140, result.XPAwarded)

	// The flawless 14-day run unlocks its champion achievement in the same
	// command, which adds another 300 XP.
	types := make([]string, 0, len(result.UnlockedAchievements))
	for _, a := range result.UnlockedAchievements {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, "NO_CAFFEINE_CHAMPION")

	p, err := f.ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 440, p.TotalXP.Int())
	assert.Equal(t, 1, p.ChallengesCompleted)
}

func TestCompleteChallenge_TooEarly(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	c, err := f.engine.Start(ctx, challenge.TypeNoSoda, time.Now())
	require.NoError(t, err)

	_, err = f.complete.Handle(ctx, command.CompleteChallengeCommand{ChallengeID: c.ID})
	assert.ErrorIs(t, err, shared.ErrChallengeNotFinished)
}

func TestAbandonChallenge(t *testing.T) {
	f := newChallengeFixture(t)
	ctx := context.Background()

	c, err := f.engine.Start(ctx, challenge.TypeNoDairy, time.Now())
	require.NoError(t, err)

	require.NoError(t, f.abandon.Handle(ctx, command.AbandonChallengeCommand{ChallengeID: c.ID}))

	_, err = f.complete.Handle(ctx, command.CompleteChallengeCommand{ChallengeID: c.ID})
	assert.ErrorIs(t, err, shared.ErrChallengeNotActive)
}
