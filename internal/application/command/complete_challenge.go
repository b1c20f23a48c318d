package command

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE CHALLENGE COMMAND
// Finishes an active challenge whose end date has passed, applies the XP
// reward, and re-evaluates achievements so a champion unlock is picked up
// immediately.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteChallengeCommand identifies the challenge to complete.
type CompleteChallengeCommand struct {
	ChallengeID string
}

// Validate validates the command.
func (c CompleteChallengeCommand) Validate() error {
	if c.ChallengeID == "" {
		return shared.NewDomainError("command", "CompleteChallenge", shared.ErrValidation, "challenge_id is required")
	}
	return nil
}

// CompleteChallengeResult contains the outcome of completing a challenge.
type CompleteChallengeResult struct {
	ChallengeID          string
	XPAwarded            int
	NewLevel             int
	DidLevelUp           bool
	UnlockedAchievements []*achievement.Achievement
}

// CompleteChallengeHandler handles the CompleteChallengeCommand.
type CompleteChallengeHandler struct {
	engine       *challenge.Engine
	ledger       *profile.Ledger
	achievements *achievement.Engine
	logger       *slog.Logger
}

// NewCompleteChallengeHandler creates a new CompleteChallengeHandler.
func NewCompleteChallengeHandler(
	engine *challenge.Engine,
	ledger *profile.Ledger,
	achievements *achievement.Engine,
	logger *slog.Logger,
) *CompleteChallengeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteChallengeHandler{
		engine:       engine,
		ledger:       ledger,
		achievements: achievements,
		logger:       logger,
	}
}

// Handle executes the complete challenge command.
func (h *CompleteChallengeHandler) Handle(ctx context.Context, cmd CompleteChallengeCommand) (*CompleteChallengeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	completion, err := h.engine.Complete(ctx, cmd.ChallengeID)
	if err != nil {
		return nil, err
	}

	result := &CompleteChallengeResult{
		ChallengeID: completion.ChallengeID,
		XPAwarded:   completion.XPReward,
	}

	xp, err := h.ledger.AddXP(ctx, completion.XPReward)
	if err != nil {
		return result, err
	}
	result.NewLevel = xp.NewLevel
	result.DidLevelUp = xp.DidLevelUp

	if err := h.ledger.IncChallengesCompleted(ctx); err != nil {
		return result, err
	}

	unlocked, err := h.achievements.EvaluateAll(ctx)
	if err != nil {
		return result, err
	}
	result.UnlockedAchievements = unlocked

	h.logger.Info("challenge completed",
		slog.String("challenge_id", completion.ChallengeID),
		slog.String("type", string(completion.Type)),
		slog.Int("xp_awarded", completion.XPReward))
	return result, nil
}
