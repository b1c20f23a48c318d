package hydration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/memory"
)

func newAggregator(t *testing.T, cfg hydration.Config) (*hydration.Aggregator, *memory.IntakeStore) {
	t.Helper()
	intakes := memory.NewIntakeStore()
	agg := hydration.NewAggregator(intakes, memory.NewDrinkCatalog(), memory.NewSettingsStore(), cfg, time.UTC)
	return agg, intakes
}

func logDrink(t *testing.T, store *memory.IntakeStore, drinkID string, amountMl int, ts time.Time) {
	t.Helper()
	ev, err := intake.NewIntakeEvent(drinkID, amountMl, ts)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), ev))
}

func TestNetFactor_Water(t *testing.T) {
	cfg := hydration.DefaultConfig()
	water := &intake.Drink{HydrationMultiplier: 1.0}

	assert.Equal(t, 1.0, hydration.NetFactor(cfg, water))
}

func TestNetFactor_MonotonicInCaffeine(t *testing.T) {
	cfg := hydration.DefaultConfig()

	prev := hydration.NetFactor(cfg, &intake.Drink{HydrationMultiplier: 1.0})
	for _, mg := range []float64{10, 30, 95, 200, 500, 2000} {
		d := &intake.Drink{HydrationMultiplier: 1.0, CaffeineMgPerServing: mg}
		factor := hydration.NetFactor(cfg, d)
		assert.Less(t, factor, prev, "factor must keep dropping at %v mg", mg)
		prev = factor
	}

	// The caffeine penalty saturates below its configured maximum.
	extreme := &intake.Drink{HydrationMultiplier: 1.0, CaffeineMgPerServing: 1e6}
	assert.Greater(t, hydration.NetFactor(cfg, extreme), 1.0-cfg.CaffeinePenaltyMax-1e-9)
}

func TestNetFactor_AlcoholCappedAndFloored(t *testing.T) {
	cfg := hydration.DefaultConfig()

	beer := &intake.Drink{HydrationMultiplier: 0.6, AlcoholPercent: 5}
	wine := &intake.Drink{HydrationMultiplier: 0.4, AlcoholPercent: 12}
	assert.Less(t, hydration.NetFactor(cfg, wine), hydration.NetFactor(cfg, beer))

	// 40% ABV hits the penalty cap, then the floor.
	spirit := &intake.Drink{HydrationMultiplier: 0.4, AlcoholPercent: 40}
	assert.Equal(t, cfg.NetFloor, hydration.NetFactor(cfg, spirit))

	// Factors can be negative before the floor kicks in.
	strong := &intake.Drink{HydrationMultiplier: 0.5, AlcoholPercent: 15}
	factor := hydration.NetFactor(cfg, strong)
	assert.Less(t, factor, 0.0)
	assert.GreaterOrEqual(t, factor, cfg.NetFloor)
}

func TestDailyProgress_NetBasis(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	// 2100 ml raw, but the coffee counts for less than its volume.
	logDrink(t, intakes, "drink-coffee", 500, day.Add(8*time.Hour))
	logDrink(t, intakes, "drink-water", 1600, day.Add(12*time.Hour))

	progress, err := agg.DailyProgress(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, day, progress.Date)
	assert.Equal(t, 2100, progress.TotalRawMl)
	assert.Equal(t, 2, progress.EntryCount)
	assert.Equal(t, 2000, progress.GoalMl)
	assert.Less(t, progress.TotalNetMl, 2000.0)
	assert.False(t, progress.GoalMet, "net basis must discount the coffee below the goal")
}

func TestDailyProgress_RawBasis(t *testing.T) {
	cfg := hydration.DefaultConfig()
	cfg.GoalBasis = hydration.GoalBasisRaw
	agg, intakes := newAggregator(t, cfg)
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	logDrink(t, intakes, "drink-coffee", 500, day.Add(8*time.Hour))
	logDrink(t, intakes, "drink-water", 1600, day.Add(12*time.Hour))

	progress, err := agg.DailyProgress(context.Background(), day)
	require.NoError(t, err)

	assert.True(t, progress.GoalMet, "raw basis counts the full 2100 ml")
	assert.InDelta(t, 105.0, progress.PercentOfGoal, 0.001)
}

func TestDailyProgress_UnknownDrinkIsNeutral(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	logDrink(t, intakes, "deleted-custom-drink", 2000, day.Add(10*time.Hour))

	progress, err := agg.DailyProgress(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, 2000, progress.TotalRawMl)
	assert.InDelta(t, 2000.0, progress.TotalNetMl, 0.001)
	assert.True(t, progress.GoalMet)
}

func TestDailyProgress_EmptyDay(t *testing.T) {
	agg, _ := newAggregator(t, hydration.DefaultConfig())

	progress, err := agg.DailyProgress(context.Background(), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Zero(t, progress.TotalRawMl)
	assert.Zero(t, progress.EntryCount)
	assert.False(t, progress.GoalMet)
	assert.Zero(t, progress.PercentOfGoal)
}

func TestWeeklyStatistics(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	// Goal met on Saturday and Sunday only.
	logDrink(t, intakes, "drink-water", 2000, monday.AddDate(0, 0, 5).Add(9*time.Hour))
	logDrink(t, intakes, "drink-water", 2000, monday.AddDate(0, 0, 6).Add(9*time.Hour))
	// Monday has an entry that misses the goal.
	logDrink(t, intakes, "drink-water", 300, monday.Add(9*time.Hour))

	stats, err := agg.WeeklyStatistics(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, monday, stats.WeekStart)
	assert.Equal(t, 4300, stats.TotalAmountMl)
	assert.InDelta(t, 4300.0/7, stats.AverageMl, 0.001)
	assert.Equal(t, 2, stats.DaysGoalMet)
	assert.Equal(t, 2, stats.CurrentStreak, "streak counts trailing goal-met days of the window")
	assert.Equal(t, 300, stats.Days[0].TotalRawMl)
	assert.True(t, stats.Days[6].GoalMet)
}

func TestCurrentStreak_GraceForToday(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	today := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	// Three full days before an in-progress today.
	for i := 1; i <= 3; i++ {
		logDrink(t, intakes, "drink-water", 2000, today.AddDate(0, 0, -i).Add(9*time.Hour))
	}
	logDrink(t, intakes, "drink-water", 400, today.Add(8*time.Hour))

	streak, err := agg.CurrentStreak(context.Background(), today.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, streak, "an unmet current day must not break the streak")
}

func TestCurrentStreak_TodayCounts(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	today := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	logDrink(t, intakes, "drink-water", 2000, today.Add(8*time.Hour))
	logDrink(t, intakes, "drink-water", 2000, today.AddDate(0, 0, -1).Add(8*time.Hour))

	streak, err := agg.CurrentStreak(context.Background(), today.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreak_BrokenByMiss(t *testing.T) {
	agg, intakes := newAggregator(t, hydration.DefaultConfig())
	today := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	logDrink(t, intakes, "drink-water", 2000, today.Add(8*time.Hour))
	// Gap yesterday, goal met the day before.
	logDrink(t, intakes, "drink-water", 2000, today.AddDate(0, 0, -2).Add(8*time.Hour))

	streak, err := agg.CurrentStreak(context.Background(), today.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
