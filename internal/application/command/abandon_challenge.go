package command

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ABANDON CHALLENGE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AbandonChallengeCommand identifies the challenge to abandon.
type AbandonChallengeCommand struct {
	ChallengeID string
}

// Validate validates the command.
func (c AbandonChallengeCommand) Validate() error {
	if c.ChallengeID == "" {
		return shared.NewDomainError("command", "AbandonChallenge", shared.ErrValidation, "challenge_id is required")
	}
	return nil
}

// AbandonChallengeHandler handles the AbandonChallengeCommand.
type AbandonChallengeHandler struct {
	engine *challenge.Engine
	logger *slog.Logger
}

// NewAbandonChallengeHandler creates a new AbandonChallengeHandler.
func NewAbandonChallengeHandler(engine *challenge.Engine, logger *slog.Logger) *AbandonChallengeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AbandonChallengeHandler{engine: engine, logger: logger}
}

// Handle executes the abandon challenge command.
func (h *AbandonChallengeHandler) Handle(ctx context.Context, cmd AbandonChallengeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.engine.Abandon(ctx, cmd.ChallengeID); err != nil {
		return err
	}
	h.logger.Info("challenge abandoned", slog.String("challenge_id", cmd.ChallengeID))
	return nil
}
