// Package jobs contains the scheduled jobs run by the background worker.
package jobs

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
)

// AchievementSweepJob periodically re-evaluates all achievement rules.
// Time-based rules (streaks, perfect periods) can become satisfied without
// any intake being logged, so unlocks cannot rely on command-path
// evaluation alone. The sweep is idempotent; already unlocked achievements
// are skipped by the engine.
type AchievementSweepJob struct {
	engine *achievement.Engine
	logger *slog.Logger
}

// NewAchievementSweepJob creates the sweep job.
func NewAchievementSweepJob(engine *achievement.Engine, logger *slog.Logger) *AchievementSweepJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementSweepJob{engine: engine, logger: logger}
}

// Name returns the unique job name.
func (j *AchievementSweepJob) Name() string {
	return "achievement_sweep"
}

// Description returns a human-readable description.
func (j *AchievementSweepJob) Description() string {
	return "Re-evaluates achievement rules and unlocks any that became satisfied"
}

// Run evaluates all achievement rules once.
func (j *AchievementSweepJob) Run(ctx context.Context) error {
	unlocked, err := j.engine.EvaluateAll(ctx)
	if err != nil {
		return err
	}
	if len(unlocked) > 0 {
		types := make([]string, 0, len(unlocked))
		for _, a := range unlocked {
			types = append(types, a.Type)
		}
		j.logger.Info("sweep unlocked achievements", slog.Any("types", types))
	}
	return nil
}
