package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE SETTINGS COMMAND
// Changing the goal or day boundaries changes every derived figure, so the
// progress cache is flushed for the current day.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateSettingsCommand carries new hydration preferences. Zero-valued
// fields keep their current value.
type UpdateSettingsCommand struct {
	DailyGoalMl int
	WakeUpTime  string
	BedTime     string
	Timezone    string
}

// UpdateSettingsHandler handles the UpdateSettingsCommand.
type UpdateSettingsHandler struct {
	settings    intake.SettingsStore
	invalidator ProgressInvalidator
	logger      *slog.Logger
}

// NewUpdateSettingsHandler creates a new UpdateSettingsHandler.
func NewUpdateSettingsHandler(settings intake.SettingsStore, invalidator ProgressInvalidator, logger *slog.Logger) *UpdateSettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateSettingsHandler{settings: settings, invalidator: invalidator, logger: logger}
}

// Handle executes the update settings command.
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) (intake.Settings, error) {
	current, err := h.settings.Get(ctx)
	if err != nil {
		return intake.Settings{}, shared.WrapError("command", "UpdateSettings", shared.ErrPersistence, "load settings", err)
	}

	if cmd.DailyGoalMl != 0 {
		if cmd.DailyGoalMl < 0 {
			return intake.Settings{}, shared.ErrInvalidGoal
		}
		current.DailyGoalMl = cmd.DailyGoalMl
	}
	if cmd.WakeUpTime != "" {
		current.WakeUpTime = cmd.WakeUpTime
	}
	if cmd.BedTime != "" {
		current.BedTime = cmd.BedTime
	}
	if cmd.Timezone != "" {
		if _, tzErr := time.LoadLocation(cmd.Timezone); tzErr != nil {
			return intake.Settings{}, shared.NewDomainError("command", "UpdateSettings", shared.ErrValidation, "unknown timezone")
		}
		current.Timezone = cmd.Timezone
	}

	if err := h.settings.Update(ctx, current); err != nil {
		if shared.IsValidation(err) {
			return intake.Settings{}, err
		}
		return intake.Settings{}, shared.WrapError("command", "UpdateSettings", shared.ErrPersistence, "persist settings", err)
	}

	if h.invalidator != nil {
		if invErr := h.invalidator.InvalidateDay(ctx, time.Now()); invErr != nil {
			h.logger.Warn("progress cache invalidation failed", slog.String("error", invErr.Error()))
		}
	}
	return current, nil
}
