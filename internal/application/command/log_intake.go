// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/retry"
)

// ProgressInvalidator drops cached derived figures for a day after the
// underlying intake log changed. A nil invalidator is a no-op.
type ProgressInvalidator interface {
	InvalidateDay(ctx context.Context, date time.Time) error
}

// ══════════════════════════════════════════════════════════════════════════════
// LOG INTAKE COMMAND
// Appends one intake entry and runs the full evaluation pipeline:
// challenges, achievements, progression. The append is durable before any
// evaluation starts.
// ══════════════════════════════════════════════════════════════════════════════

// LogIntakeCommand contains the data to log a drink.
type LogIntakeCommand struct {
	// DrinkID references a catalog entry.
	DrinkID string

	// AmountMl is the consumed volume. Must be positive.
	AmountMl int

	// Timestamp is when the drink was consumed (defaults to now if zero).
	Timestamp time.Time
}

// Validate validates the command.
func (c LogIntakeCommand) Validate() error {
	if c.DrinkID == "" {
		return shared.NewDomainError("command", "LogIntake", shared.ErrValidation, "drink_id is required")
	}
	if c.AmountMl <= 0 {
		return shared.ErrInvalidAmount
	}
	return nil
}

// LogIntakeResult contains the outcome of logging a drink.
type LogIntakeResult struct {
	IntakeID             string
	DailyProgress        hydration.DailyProgress
	ViolatedChallenges   []*challenge.Challenge
	UnlockedAchievements []*achievement.Achievement
	RecordedAt           time.Time
}

// LogIntakeHandler handles the LogIntakeCommand.
type LogIntakeHandler struct {
	intakes      intake.IntakeStore
	catalog      intake.DrinkCatalog
	aggregator   *hydration.Aggregator
	challenges   *challenge.Engine
	achievements *achievement.Engine
	ledger       *profile.Ledger
	publisher    shared.EventPublisher
	invalidator  ProgressInvalidator
	retrier      *retry.Retrier
	logger       *slog.Logger
}

// NewLogIntakeHandler creates a new LogIntakeHandler.
func NewLogIntakeHandler(
	intakes intake.IntakeStore,
	catalog intake.DrinkCatalog,
	aggregator *hydration.Aggregator,
	challenges *challenge.Engine,
	achievements *achievement.Engine,
	ledger *profile.Ledger,
	publisher shared.EventPublisher,
	invalidator ProgressInvalidator,
	logger *slog.Logger,
) *LogIntakeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogIntakeHandler{
		intakes:      intakes,
		catalog:      catalog,
		aggregator:   aggregator,
		challenges:   challenges,
		achievements: achievements,
		ledger:       ledger,
		publisher:    publisher,
		invalidator:  invalidator,
		retrier:      retry.StoreRetrier(),
		logger:       logger,
	}
}

// Handle executes the log intake command.
func (h *LogIntakeHandler) Handle(ctx context.Context, cmd LogIntakeCommand) (*LogIntakeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	drink, err := h.catalog.Get(ctx, cmd.DrinkID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrDrinkNotFound
		}
		return nil, shared.WrapError("command", "LogIntake", shared.ErrPersistence, "load drink", err)
	}

	event, err := intake.NewIntakeEvent(drink.ID, cmd.AmountMl, cmd.Timestamp)
	if err != nil {
		return nil, err
	}

	// Durable append first. Everything downstream can be replayed or
	// re-evaluated; a lost intake entry cannot.
	err = h.retrier.Do(ctx, func(ctx context.Context) error {
		if appendErr := h.intakes.Append(ctx, event); appendErr != nil {
			return retry.Retryable(appendErr)
		}
		return nil
	})
	if err != nil {
		return nil, shared.WrapError("command", "LogIntake", shared.ErrPersistence, "append intake", err)
	}

	h.invalidateDay(ctx, event.Timestamp)

	if err := h.ledger.RecordDrink(ctx, drink.Name); err != nil {
		return nil, err
	}

	_ = h.publisher.Publish(shared.NewIntakeLoggedEvent(event.ID, drink.ID, drink.Name, event.AmountMl, event.Timestamp))

	result := &LogIntakeResult{
		IntakeID:   event.ID,
		RecordedAt: event.CreatedAt,
	}

	violated, err := h.challenges.OnIntakeLogged(ctx, event, drink)
	if err != nil {
		return result, err
	}
	result.ViolatedChallenges = violated

	unlocked, err := h.achievements.EvaluateAll(ctx)
	if err != nil {
		return result, err
	}
	result.UnlockedAchievements = unlocked

	progress, err := h.aggregator.DailyProgress(ctx, event.Timestamp)
	if err != nil {
		return result, err
	}
	result.DailyProgress = progress

	h.logger.Debug("intake logged",
		slog.String("intake_id", event.ID),
		slog.String("drink", drink.Name),
		slog.Int("amount_ml", event.AmountMl))
	return result, nil
}

func (h *LogIntakeHandler) invalidateDay(ctx context.Context, date time.Time) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.InvalidateDay(ctx, date); err != nil {
		h.logger.Warn("progress cache invalidation failed", slog.String("error", err.Error()))
	}
}
