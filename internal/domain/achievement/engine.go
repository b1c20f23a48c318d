package achievement

import (
	"context"
	"log/slog"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// Engine re-evaluates the locked part of the catalog against current data.
// Evaluation is idempotent: re-running with no new data changes nothing and
// unlocks nothing.
type Engine struct {
	store      Store
	aggregator *hydration.Aggregator
	intakes    intake.IntakeStore
	settings   intake.SettingsStore
	challenges challenge.Store
	ledger     *profile.Ledger
	uow        shared.UnitOfWork
	sink       shared.RewardSink
	catalog    []Definition
	loc        *time.Location
	logger     *slog.Logger
}

// NewEngine creates an achievement engine over the built-in catalog.
func NewEngine(
	store Store,
	aggregator *hydration.Aggregator,
	intakes intake.IntakeStore,
	settings intake.SettingsStore,
	challenges challenge.Store,
	ledger *profile.Ledger,
	uow shared.UnitOfWork,
	sink shared.RewardSink,
	loc *time.Location,
	logger *slog.Logger,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:      store,
		aggregator: aggregator,
		intakes:    intakes,
		settings:   settings,
		challenges: challenges,
		ledger:     ledger,
		uow:        uow,
		sink:       sink,
		catalog:    Catalog(),
		loc:        loc,
		logger:     logger,
	}
}

// EvaluateAll recomputes progress for every locked achievement and returns
// the ones newly unlocked by this pass. Each unlock applies its XP reward
// and character unlock in the same atomic scope as the unlock itself.
func (e *Engine) EvaluateAll(ctx context.Context) ([]*Achievement, error) {
	var unlocked []*Achievement
	for _, def := range e.catalog {
		ach, err := e.load(ctx, def)
		if err != nil {
			return unlocked, err
		}
		if ach.IsUnlocked {
			continue
		}

		progress, err := e.progressFor(ctx, def)
		if err != nil {
			return unlocked, err
		}
		changed := ach.SetProgress(progress)

		if ach.ReadyToUnlock() {
			won, err := e.unlock(ctx, def, ach)
			if err != nil {
				return unlocked, err
			}
			if won {
				unlocked = append(unlocked, ach)
			}
			continue
		}
		if changed {
			if err := e.store.Upsert(ctx, ach); err != nil {
				return unlocked, shared.WrapError("achievement", "EvaluateAll", shared.ErrPersistence, "persist progress", err)
			}
		}
	}
	return unlocked, nil
}

// load returns the stored progress row for a definition, initializing a
// fresh one on first evaluation.
func (e *Engine) load(ctx context.Context, def Definition) (*Achievement, error) {
	ach, err := e.store.Get(ctx, def.Type)
	if err == nil {
		// Stored rows from older catalogs keep working; the current
		// target always wins.
		ach.ProgressMax = def.Target
		return ach, nil
	}
	if !shared.IsNotFound(err) {
		return nil, shared.WrapError("achievement", "Load", shared.ErrPersistence, "load achievement", err)
	}
	return &Achievement{Type: def.Type, ProgressMax: def.Target, UpdatedAt: time.Now()}, nil
}

// unlock persists the unlocked state and applies its rewards atomically,
// then emits the unlock event. The store-side unlock only succeeds while
// the row is still locked, so a concurrent sweep holding a stale snapshot
// loses the race instead of rewarding twice. Returns whether this call won.
func (e *Engine) unlock(ctx context.Context, def Definition, ach *Achievement) (bool, error) {
	if !ach.Unlock() {
		return false, nil
	}
	won := false
	err := e.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		won, err = e.store.Unlock(ctx, ach)
		if err != nil || !won {
			return err
		}
		if def.XPReward > 0 {
			if _, err := e.ledger.AddXP(ctx, def.XPReward); err != nil {
				return err
			}
		}
		if def.Character != "" {
			if err := e.ledger.UnlockCharacter(ctx, def.Character); err != nil {
				return err
			}
		}
		return e.ledger.IncAchievementsUnlocked(ctx)
	})
	if err != nil {
		return false, shared.WrapError("achievement", "Unlock", shared.ErrPersistence, "apply unlock", err)
	}
	if !won {
		return false, nil
	}

	e.logger.Info("achievement unlocked",
		slog.String("type", def.Type),
		slog.Int("xp_reward", def.XPReward))
	_ = e.sink.Publish(shared.NewAchievementUnlockedEvent(def.Type, def.Name, def.XPReward, def.Character))
	return true, nil
}

// progressFor computes the current raw progress value for one definition.
// SetProgress clamps it into [0, progressMax].
func (e *Engine) progressFor(ctx context.Context, def Definition) (int, error) {
	switch def.Kind {
	case KindStreak:
		return e.aggregator.CurrentStreak(ctx, time.Now())
	case KindPerfectPeriod:
		return e.aggregator.GoalMetDays(ctx, time.Now(), def.WindowDays)
	case KindTotalVolume:
		return e.totalVolume(ctx, def.WindowDays)
	case KindEarlyBird:
		return e.edgeOfDayCount(ctx, def.WindowDays, true)
	case KindNightOwl:
		return e.edgeOfDayCount(ctx, def.WindowDays, false)
	case KindVariety:
		p, err := e.ledger.Profile(ctx)
		if err != nil {
			return 0, err
		}
		return len(p.UniqueDrinks), nil
	case KindChallengeChampion:
		return e.championCount(ctx, def.ChallengeType)
	default:
		return 0, nil
	}
}

func (e *Engine) totalVolume(ctx context.Context, windowDays int) (int, error) {
	window := shared.LastNDays(windowDays)
	events, err := e.intakes.QueryRange(ctx, window.From, window.To)
	if err != nil {
		return 0, shared.WrapError("achievement", "TotalVolume", shared.ErrPersistence, "query intake range", err)
	}
	total := 0
	for _, ev := range events {
		total += ev.AmountMl
	}
	return total, nil
}

// edgeOfDayCount counts the days in the lookback window whose first logged
// entry falls within the hour after wake-up (early) or within the hour
// before bed time (late). Both rules key on the day's first entry; later
// entries never move a day into the window.
func (e *Engine) edgeOfDayCount(ctx context.Context, windowDays int, early bool) (int, error) {
	settings, err := e.settings.Get(ctx)
	if err != nil {
		return 0, shared.WrapError("achievement", "EdgeOfDay", shared.ErrPersistence, "load settings", err)
	}
	window := shared.LastNDays(windowDays)
	events, err := e.intakes.QueryRange(ctx, window.From, window.To)
	if err != nil {
		return 0, shared.WrapError("achievement", "EdgeOfDay", shared.ErrPersistence, "query intake range", err)
	}

	// QueryRange is timestamp-ordered, so per day the first hit is the
	// earliest entry.
	firstOfDay := make(map[string]time.Time)
	for _, ev := range events {
		key := timeutil.DayKey(ev.Timestamp, e.loc)
		if _, ok := firstOfDay[key]; !ok {
			firstOfDay[key] = ev.Timestamp
		}
	}

	wake := timeutil.ParseTimeOfDay(settings.WakeUpTime, timeutil.TimeOfDay{Hour: 7})
	bed := timeutil.ParseTimeOfDay(settings.BedTime, timeutil.TimeOfDay{Hour: 23})

	count := 0
	for _, ts := range firstOfDay {
		var hour shared.TimeRange
		if early {
			start := wake.On(ts, e.loc)
			hour = shared.TimeRange{From: start, To: start.Add(time.Hour)}
		} else {
			end := bed.On(ts, e.loc)
			hour = shared.TimeRange{From: end.Add(-time.Hour), To: end}
		}
		if hour.Contains(ts) {
			count++
		}
	}
	return count, nil
}

// championCount reports whether a flawless completed challenge of the type
// exists. Runs shorter than 14 days never qualify.
func (e *Engine) championCount(ctx context.Context, t challenge.Type) (int, error) {
	completed, err := e.challenges.ListCompleted(ctx)
	if err != nil {
		return 0, shared.WrapError("achievement", "ChampionCount", shared.ErrPersistence, "list completed challenges", err)
	}
	for _, c := range completed {
		if c.Type == t && c.IsFlawless() && c.DurationDays() >= 14 {
			return 1, nil
		}
	}
	return 0, nil
}
