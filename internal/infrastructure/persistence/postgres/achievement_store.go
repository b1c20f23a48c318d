package postgres

import (
	"context"
	"fmt"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AchievementStore implements achievement.Store for PostgreSQL.
type AchievementStore struct {
	conn *Connection
}

// NewAchievementStore creates a new AchievementStore.
func NewAchievementStore(conn *Connection) *AchievementStore {
	return &AchievementStore{conn: conn}
}

// Get returns the stored progress for a type.
func (s *AchievementStore) Get(ctx context.Context, achievementType string) (*achievement.Achievement, error) {
	query := `
		SELECT achievement_type, progress, progress_max, is_unlocked, unlocked_at, updated_at
		FROM achievements
		WHERE achievement_type = $1
	`

	var a achievement.Achievement
	err := s.conn.querier(ctx).QueryRow(ctx, query, achievementType).
		Scan(&a.Type, &a.Progress, &a.ProgressMax, &a.IsUnlocked, &a.UnlockedAt, &a.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return &a, nil
}

// List returns all stored achievements.
func (s *AchievementStore) List(ctx context.Context) ([]*achievement.Achievement, error) {
	query := `
		SELECT achievement_type, progress, progress_max, is_unlocked, unlocked_at, updated_at
		FROM achievements
		ORDER BY achievement_type
	`

	rows, err := s.conn.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*achievement.Achievement
	for rows.Next() {
		var a achievement.Achievement
		if err := rows.Scan(&a.Type, &a.Progress, &a.ProgressMax, &a.IsUnlocked, &a.UnlockedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, &a)
	}
	return achievements, rows.Err()
}

// Upsert persists the achievement state.
func (s *AchievementStore) Upsert(ctx context.Context, a *achievement.Achievement) error {
	query := `
		INSERT INTO achievements (achievement_type, progress, progress_max, is_unlocked, unlocked_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (achievement_type) DO UPDATE SET
			progress = EXCLUDED.progress,
			progress_max = EXCLUDED.progress_max,
			is_unlocked = EXCLUDED.is_unlocked,
			unlocked_at = EXCLUDED.unlocked_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.conn.querier(ctx).Exec(ctx, query,
		a.Type,
		a.Progress,
		a.ProgressMax,
		a.IsUnlocked,
		a.UnlockedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert achievement: %w", err)
	}
	return nil
}

// Unlock persists the unlocked state only while the stored row is still
// locked. The conditional update makes the unlock race-safe: a concurrent
// caller matches zero rows and reports false.
func (s *AchievementStore) Unlock(ctx context.Context, a *achievement.Achievement) (bool, error) {
	query := `
		INSERT INTO achievements (achievement_type, progress, progress_max, is_unlocked, unlocked_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (achievement_type) DO UPDATE SET
			progress = EXCLUDED.progress,
			progress_max = EXCLUDED.progress_max,
			is_unlocked = EXCLUDED.is_unlocked,
			unlocked_at = EXCLUDED.unlocked_at,
			updated_at = EXCLUDED.updated_at
		WHERE achievements.is_unlocked = FALSE
	`

	result, err := s.conn.querier(ctx).Exec(ctx, query,
		a.Type,
		a.Progress,
		a.ProgressMax,
		a.IsUnlocked,
		a.UnlockedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
