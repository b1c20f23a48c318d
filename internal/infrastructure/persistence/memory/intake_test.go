package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

func TestIntakeStore_Latest(t *testing.T) {
	store := NewIntakeStore()
	ctx := context.Background()

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	var newest *intake.IntakeEvent
	for _, offset := range []time.Duration{2 * time.Hour, 6 * time.Hour, 4 * time.Hour} {
		ev, err := intake.NewIntakeEvent("drink-water", 250, base.Add(offset))
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, ev))
		if newest == nil || ev.Timestamp.After(newest.Timestamp) {
			newest = ev
		}
	}

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, latest.ID, "append order does not matter, the timestamp does")
}
