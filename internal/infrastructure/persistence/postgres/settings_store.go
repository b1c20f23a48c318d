package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
)

// settingsRowID is the id of the single settings row.
const settingsRowID = "default"

// ══════════════════════════════════════════════════════════════════════════════
// SETTINGS STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SettingsStore implements intake.SettingsStore for PostgreSQL.
type SettingsStore struct {
	conn *Connection
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(conn *Connection) *SettingsStore {
	return &SettingsStore{conn: conn}
}

// Get returns the current settings. A missing row or unusable stored field
// falls back to defaults field by field.
func (s *SettingsStore) Get(ctx context.Context) (intake.Settings, error) {
	query := `
		SELECT daily_goal_ml, wake_up_time, bed_time, timezone
		FROM settings
		WHERE id = $1
	`

	var stored intake.Settings
	err := s.conn.querier(ctx).QueryRow(ctx, query, settingsRowID).
		Scan(&stored.DailyGoalMl, &stored.WakeUpTime, &stored.BedTime, &stored.Timezone)
	if err != nil {
		if IsNoRows(err) {
			return intake.DefaultSettings(), nil
		}
		return intake.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return sanitizeSettings(stored), nil
}

// Update replaces the settings after validation.
func (s *SettingsStore) Update(ctx context.Context, settings intake.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (id, daily_goal_ml, wake_up_time, bed_time, timezone, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			daily_goal_ml = EXCLUDED.daily_goal_ml,
			wake_up_time = EXCLUDED.wake_up_time,
			bed_time = EXCLUDED.bed_time,
			timezone = EXCLUDED.timezone,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.conn.querier(ctx).Exec(ctx, query,
		settingsRowID,
		settings.DailyGoalMl,
		settings.WakeUpTime,
		settings.BedTime,
		settings.Timezone,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// sanitizeSettings replaces unusable stored fields with defaults.
func sanitizeSettings(stored intake.Settings) intake.Settings {
	defaults := intake.DefaultSettings()

	if stored.DailyGoalMl <= 0 {
		stored.DailyGoalMl = defaults.DailyGoalMl
	}
	if stored.WakeUpTime == "" {
		stored.WakeUpTime = defaults.WakeUpTime
	}
	if stored.BedTime == "" {
		stored.BedTime = defaults.BedTime
	}
	if stored.Timezone == "" {
		stored.Timezone = defaults.Timezone
	} else if _, err := time.LoadLocation(stored.Timezone); err != nil {
		stored.Timezone = defaults.Timezone
	}
	return stored
}
