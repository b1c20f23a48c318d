package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestXPLevel(t *testing.T) {
	assert.Equal(t, Level(1), XP(0).Level())
	assert.Equal(t, Level(1), XP(499).Level())
	assert.Equal(t, Level(2), XP(500).Level())
	assert.Equal(t, Level(2), XP(1499).Level())
	assert.Equal(t, Level(3), XP(1500).Level())
	assert.Equal(t, Level(4), XP(3000).Level())
}

func TestXPAdd_Clamps(t *testing.T) {
	assert.Equal(t, XP(100), XP(40).Add(60))
	assert.Equal(t, MinXP, XP(10).Add(-50))
	assert.Equal(t, MaxXP, MaxXP.Add(1))
}

func TestLevelRequiredXP(t *testing.T) {
	assert.Equal(t, 0, Level(1).RequiredXP())
	assert.Equal(t, 500, Level(2).RequiredXP())
	assert.Equal(t, 1500, Level(3).RequiredXP())
	assert.Equal(t, 3000, Level(4).RequiredXP())
}

func TestXPProgressToNextLevel(t *testing.T) {
	assert.Equal(t, 0, XP(0).ProgressToNextLevel())
	assert.Equal(t, 50, XP(250).ProgressToNextLevel())
	assert.Equal(t, 0, XP(500).ProgressToNextLevel())
	assert.Equal(t, 100, XP(MaxLevel.RequiredXP()).ProgressToNextLevel())
}

func TestLevelTitle(t *testing.T) {
	assert.Equal(t, "Droplet", Level(1).Title())
	assert.Equal(t, "Puddle", Level(5).Title())
	assert.Equal(t, "Ocean", Level(100).Title())
}

func TestTimeRange(t *testing.T) {
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	r := TimeRange{From: from, To: to}

	assert.True(t, r.IsValid())
	assert.Equal(t, 24*time.Hour, r.Duration())
	assert.True(t, r.Contains(from))
	assert.False(t, r.Contains(to), "the range is half-open")
	assert.False(t, TimeRange{From: to, To: from}.IsValid())
}
