package command

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE INTAKE COMMAND
// Removes a logged entry. Derived figures are never stored, so the next
// read recomputes without the entry; already-settled challenge violations
// and unlocked achievements stay as they are.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteIntakeCommand identifies the entry to remove.
type DeleteIntakeCommand struct {
	IntakeID string
}

// Validate validates the command.
func (c DeleteIntakeCommand) Validate() error {
	if c.IntakeID == "" {
		return shared.NewDomainError("command", "DeleteIntake", shared.ErrValidation, "intake_id is required")
	}
	return nil
}

// DeleteIntakeHandler handles the DeleteIntakeCommand.
type DeleteIntakeHandler struct {
	intakes     intake.IntakeStore
	publisher   shared.EventPublisher
	invalidator ProgressInvalidator
	retrier     *retry.Retrier
	logger      *slog.Logger
}

// NewDeleteIntakeHandler creates a new DeleteIntakeHandler.
func NewDeleteIntakeHandler(
	intakes intake.IntakeStore,
	publisher shared.EventPublisher,
	invalidator ProgressInvalidator,
	logger *slog.Logger,
) *DeleteIntakeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteIntakeHandler{
		intakes:     intakes,
		publisher:   publisher,
		invalidator: invalidator,
		retrier:     retry.StoreRetrier(),
		logger:      logger,
	}
}

// Handle executes the delete intake command.
func (h *DeleteIntakeHandler) Handle(ctx context.Context, cmd DeleteIntakeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event, err := h.intakes.Get(ctx, cmd.IntakeID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.ErrIntakeNotFound
		}
		return shared.WrapError("command", "DeleteIntake", shared.ErrPersistence, "load intake", err)
	}

	err = h.retrier.Do(ctx, func(ctx context.Context) error {
		delErr := h.intakes.Delete(ctx, cmd.IntakeID)
		if delErr == nil || shared.IsNotFound(delErr) {
			return retry.Permanent(delErr)
		}
		return retry.Retryable(delErr)
	})
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.ErrIntakeNotFound
		}
		return shared.WrapError("command", "DeleteIntake", shared.ErrPersistence, "delete intake", err)
	}

	if h.invalidator != nil {
		if invErr := h.invalidator.InvalidateDay(ctx, event.Timestamp); invErr != nil {
			h.logger.Warn("progress cache invalidation failed", slog.String("error", invErr.Error()))
		}
	}

	_ = h.publisher.Publish(shared.NewIntakeDeletedEvent(cmd.IntakeID))
	return nil
}
