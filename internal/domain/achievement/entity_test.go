package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetProgress(t *testing.T) {
	a := &Achievement{Type: "STREAK_7", ProgressMax: 7}

	assert.True(t, a.SetProgress(3))
	assert.Equal(t, 3, a.Progress)
	assert.False(t, a.SetProgress(3), "unchanged value reports no change")

	// Values clamp into [0, ProgressMax].
	assert.True(t, a.SetProgress(100))
	assert.Equal(t, 7, a.Progress)
	assert.True(t, a.SetProgress(-5))
	assert.Equal(t, 0, a.Progress)
}

func TestSetProgress_FrozenAfterUnlock(t *testing.T) {
	a := &Achievement{Type: "STREAK_7", Progress: 7, ProgressMax: 7}

	assert.True(t, a.ReadyToUnlock())
	assert.True(t, a.Unlock())

	assert.False(t, a.SetProgress(0))
	assert.Equal(t, 7, a.Progress)
	assert.False(t, a.ReadyToUnlock())
}

func TestUnlock_Once(t *testing.T) {
	a := &Achievement{Type: "VARIETY_MASTER", Progress: 10, ProgressMax: 10}

	assert.True(t, a.Unlock())
	first := a.UnlockedAt
	assert.NotNil(t, first)

	assert.False(t, a.Unlock())
	assert.Equal(t, first, a.UnlockedAt)
}

func TestCatalog_ChampionEntries(t *testing.T) {
	byType := make(map[string]Definition)
	for _, def := range Catalog() {
		byType[def.Type] = def
	}

	decaf, ok := byType["NO_CAFFEINE_CHAMPION"]
	assert.True(t, ok)
	assert.Equal(t, KindChallengeChampion, decaf.Kind)
	assert.Equal(t, 1, decaf.Target)
	assert.Equal(t, 300, decaf.XPReward)

	// Short challenge types never earn a champion entry.
	_, ok = byType["PLANT_BASED_ONLY_CHAMPION"]
	assert.False(t, ok)
}
