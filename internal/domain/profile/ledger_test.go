package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func (s *captureSink) count(t shared.EventType) int {
	n := 0
	for _, e := range s.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func newLedger(t *testing.T) (*profile.Ledger, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	return profile.NewLedger(memory.NewProfileStore(), sink), sink
}

func TestAddXP(t *testing.T) {
	ledger, sink := newLedger(t)
	ctx := context.Background()

	result, err := ledger.AddXP(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 300, result.NewTotalXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.False(t, result.DidLevelUp)

	// Crossing 500 total XP reaches level 2.
	result, err = ledger.AddXP(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, 550, result.NewTotalXP)
	assert.Equal(t, 2, result.NewLevel)
	assert.True(t, result.DidLevelUp)
	assert.Equal(t, 1, sink.count(shared.EventLevelUp))

	// Totals are additive across calls.
	p, err := ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 550, p.TotalXP.Int())
}

func TestAddXP_RejectsNonPositive(t *testing.T) {
	ledger, sink := newLedger(t)

	_, err := ledger.AddXP(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrNonPositiveXP)
	_, err = ledger.AddXP(context.Background(), -10)
	assert.ErrorIs(t, err, shared.ErrNonPositiveXP)
	assert.Empty(t, sink.events)
}

func TestUnlockCharacter_Idempotent(t *testing.T) {
	ledger, sink := newLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.UnlockCharacter(ctx, "char-sprout"))
	require.NoError(t, ledger.UnlockCharacter(ctx, "char-sprout"))
	require.NoError(t, ledger.UnlockCharacter(ctx, ""))

	p, err := ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"char-sprout"}, p.UnlockedCharacters)
	assert.Equal(t, 1, sink.count(shared.EventCharacterUnlocked))
}

func TestRecordDrink(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.RecordDrink(ctx, "Water"))
	require.NoError(t, ledger.RecordDrink(ctx, "Water"))
	require.NoError(t, ledger.RecordDrink(ctx, "Coffee"))

	p, err := ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalDrinksLogged, "the counter always increments")
	assert.Equal(t, []string{"Water", "Coffee"}, p.UniqueDrinks, "the set stays deduplicated")
}

func TestCounters(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.IncChallengesCompleted(ctx))
	require.NoError(t, ledger.IncChallengesCompleted(ctx))
	require.NoError(t, ledger.IncAchievementsUnlocked(ctx))

	p, err := ledger.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p.ChallengesCompleted)
	assert.Equal(t, 1, p.AchievementsUnlocked)
}
