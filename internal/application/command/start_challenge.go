package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// START CHALLENGE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// StartChallengeCommand starts a new challenge run.
type StartChallengeCommand struct {
	// Type is the challenge type, e.g. "NO_CAFFEINE".
	Type string

	// StartDate defaults to today.
	StartDate time.Time
}

// Validate validates the command.
func (c StartChallengeCommand) Validate() error {
	if c.Type == "" {
		return shared.NewDomainError("command", "StartChallenge", shared.ErrValidation, "challenge type is required")
	}
	return nil
}

// StartChallengeHandler handles the StartChallengeCommand.
type StartChallengeHandler struct {
	engine *challenge.Engine
	logger *slog.Logger
}

// NewStartChallengeHandler creates a new StartChallengeHandler.
func NewStartChallengeHandler(engine *challenge.Engine, logger *slog.Logger) *StartChallengeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StartChallengeHandler{engine: engine, logger: logger}
}

// Handle executes the start challenge command.
func (h *StartChallengeHandler) Handle(ctx context.Context, cmd StartChallengeCommand) (*challenge.Challenge, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	c, err := h.engine.Start(ctx, challenge.ParseType(cmd.Type), startDate)
	if err != nil {
		return nil, err
	}
	h.logger.Info("challenge started",
		slog.String("challenge_id", c.ID),
		slog.String("type", string(c.Type)),
		slog.Time("end_date", c.EndDate))
	return c, nil
}
