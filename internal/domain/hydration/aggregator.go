package hydration

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// maxStreakLookbackDays bounds the backward streak scan.
const maxStreakLookbackDays = 366

// DailyProgress is the derived view of a single calendar day.
type DailyProgress struct {
	Date          time.Time // start of day, local
	TotalRawMl    int
	TotalNetMl    float64
	GoalMl        int
	PercentOfGoal float64
	GoalMet       bool
	EntryCount    int
}

// WeeklyStatistics covers exactly 7 calendar days starting at WeekStart.
type WeeklyStatistics struct {
	WeekStart     time.Time
	Days          [7]DailyProgress
	TotalAmountMl int // sum of daily raw totals
	AverageMl     float64
	DaysGoalMet   int
	CurrentStreak int // trailing goal-met days ending at the last day of the window
}

// Aggregator recomputes hydration figures from the intake log. It holds no
// state of its own.
type Aggregator struct {
	intakes  intake.IntakeStore
	catalog  intake.DrinkCatalog
	settings intake.SettingsStore
	cfg      Config
	loc      *time.Location
}

// NewAggregator creates a hydration aggregator.
func NewAggregator(intakes intake.IntakeStore, catalog intake.DrinkCatalog, settings intake.SettingsStore, cfg Config, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		intakes:  intakes,
		catalog:  catalog,
		settings: settings,
		cfg:      cfg,
		loc:      loc,
	}
}

// NetFactor exposes the configured net-factor formula.
func (a *Aggregator) NetFactor(drink *intake.Drink) float64 {
	return NetFactor(a.cfg, drink)
}

// Location returns the calendar location the aggregator computes in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// DailyProgress computes the figures for the calendar day containing date.
func (a *Aggregator) DailyProgress(ctx context.Context, date time.Time) (DailyProgress, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return DailyProgress{}, shared.WrapError("hydration", "DailyProgress", shared.ErrPersistence, "load settings", err)
	}
	return a.dayProgress(ctx, date, settings, newDrinkResolver(a.catalog))
}

// dayProgress is the shared per-day computation; the resolver caches drink
// lookups across days of the same request.
func (a *Aggregator) dayProgress(ctx context.Context, date time.Time, settings intake.Settings, drinks *drinkResolver) (DailyProgress, error) {
	dayStart := timeutil.StartOfDay(date, a.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := a.intakes.QueryRange(ctx, dayStart, dayEnd)
	if err != nil {
		return DailyProgress{}, shared.WrapError("hydration", "DailyProgress", shared.ErrPersistence, "query intake range", err)
	}

	progress := DailyProgress{
		Date:   dayStart,
		GoalMl: settings.DailyGoalMl,
	}
	for _, ev := range events {
		drink, err := drinks.resolve(ctx, ev.DrinkID)
		if err != nil {
			return DailyProgress{}, err
		}
		progress.TotalRawMl += ev.AmountMl
		progress.TotalNetMl += float64(ev.AmountMl) * NetFactor(a.cfg, drink)
		progress.EntryCount++
	}

	basis := progress.TotalNetMl
	if a.cfg.GoalBasis == GoalBasisRaw {
		basis = float64(progress.TotalRawMl)
	}
	if progress.GoalMl > 0 {
		progress.PercentOfGoal = basis / float64(progress.GoalMl) * 100
		progress.GoalMet = basis >= float64(progress.GoalMl)
	}
	return progress, nil
}

// WeeklyStatistics computes the 7-day window starting at weekStart.
func (a *Aggregator) WeeklyStatistics(ctx context.Context, weekStart time.Time) (WeeklyStatistics, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return WeeklyStatistics{}, shared.WrapError("hydration", "WeeklyStatistics", shared.ErrPersistence, "load settings", err)
	}

	drinks := newDrinkResolver(a.catalog)
	stats := WeeklyStatistics{WeekStart: timeutil.StartOfDay(weekStart, a.loc)}
	for i, day := range timeutil.WeekWindow(weekStart, a.loc) {
		dp, err := a.dayProgress(ctx, day, settings, drinks)
		if err != nil {
			return WeeklyStatistics{}, err
		}
		stats.Days[i] = dp
		stats.TotalAmountMl += dp.TotalRawMl
		if dp.GoalMet {
			stats.DaysGoalMet++
		}
	}
	stats.AverageMl = float64(stats.TotalAmountMl) / 7

	lastDay := stats.Days[6].Date
	streak, err := a.streakEndingAt(ctx, lastDay, settings, drinks, false)
	if err != nil {
		return WeeklyStatistics{}, err
	}
	stats.CurrentStreak = streak
	return stats, nil
}

// CurrentStreak returns the number of consecutive goal-met days ending at
// the day containing asOf. If that day has not met its goal yet, the scan
// starts at the previous day, so an in-progress day never breaks a streak.
func (a *Aggregator) CurrentStreak(ctx context.Context, asOf time.Time) (int, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return 0, shared.WrapError("hydration", "CurrentStreak", shared.ErrPersistence, "load settings", err)
	}
	return a.streakEndingAt(ctx, asOf, settings, newDrinkResolver(a.catalog), true)
}

// GoalMetDays counts the goal-met days in the trailing window of n
// calendar days ending at the day containing asOf. Unlike a streak, a
// missed day inside the window does not zero the count.
func (a *Aggregator) GoalMetDays(ctx context.Context, asOf time.Time, n int) (int, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return 0, shared.WrapError("hydration", "GoalMetDays", shared.ErrPersistence, "load settings", err)
	}
	drinks := newDrinkResolver(a.catalog)
	day := timeutil.StartOfDay(asOf, a.loc)

	met := 0
	for i := 0; i < n; i++ {
		dp, err := a.dayProgress(ctx, day.AddDate(0, 0, -i), settings, drinks)
		if err != nil {
			return 0, err
		}
		if dp.GoalMet {
			met++
		}
	}
	return met, nil
}

// streakEndingAt counts backward from day. When graceToday is set, an unmet
// first day shifts the scan to the previous day instead of ending it.
func (a *Aggregator) streakEndingAt(ctx context.Context, day time.Time, settings intake.Settings, drinks *drinkResolver, graceToday bool) (int, error) {
	cursor := timeutil.StartOfDay(day, a.loc)

	if graceToday {
		dp, err := a.dayProgress(ctx, cursor, settings, drinks)
		if err != nil {
			return 0, err
		}
		if !dp.GoalMet {
			cursor = cursor.AddDate(0, 0, -1)
		}
	}

	streak := 0
	for i := 0; i < maxStreakLookbackDays; i++ {
		dp, err := a.dayProgress(ctx, cursor, settings, drinks)
		if err != nil {
			return 0, err
		}
		if !dp.GoalMet {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// drinkResolver caches catalog lookups for one computation. Unknown drink
// ids resolve to a neutral water-like drink instead of failing the whole
// aggregate.
type drinkResolver struct {
	catalog intake.DrinkCatalog
	cache   map[string]*intake.Drink
}

func newDrinkResolver(catalog intake.DrinkCatalog) *drinkResolver {
	return &drinkResolver{catalog: catalog, cache: make(map[string]*intake.Drink)}
}

var neutralDrink = &intake.Drink{
	ID:                  "unknown",
	Name:                "Unknown",
	Category:            intake.CategoryCustom,
	HydrationMultiplier: 1.0,
}

func (r *drinkResolver) resolve(ctx context.Context, id string) (*intake.Drink, error) {
	if d, ok := r.cache[id]; ok {
		return d, nil
	}
	d, err := r.catalog.Get(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			r.cache[id] = neutralDrink
			return neutralDrink, nil
		}
		return nil, shared.WrapError("hydration", "ResolveDrink", shared.ErrPersistence, "load drink", err)
	}
	r.cache[id] = d
	return d, nil
}
