// Package achievement evaluates the achievement rule catalog against the
// intake log and progression state, and unlocks each achievement exactly
// once.
package achievement

import (
	"context"
	"time"
)

// Achievement is the persisted progress toward one catalog entry.
type Achievement struct {
	Type        string
	Progress    int
	ProgressMax int
	IsUnlocked  bool
	UnlockedAt  *time.Time
	UpdatedAt   time.Time
}

// SetProgress clamps and applies a new progress value. Progress on an
// unlocked achievement is frozen.
func (a *Achievement) SetProgress(value int) bool {
	if a.IsUnlocked {
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > a.ProgressMax {
		value = a.ProgressMax
	}
	if value == a.Progress {
		return false
	}
	a.Progress = value
	a.UpdatedAt = time.Now()
	return true
}

// ReadyToUnlock reports whether progress has crossed the threshold while
// the achievement is still locked.
func (a *Achievement) ReadyToUnlock() bool {
	return !a.IsUnlocked && a.Progress >= a.ProgressMax
}

// Unlock flips the unlocked flag. The isUnlocked guard makes a second call
// a no-op, so an achievement unlocks exactly once.
func (a *Achievement) Unlock() bool {
	if a.IsUnlocked {
		return false
	}
	now := time.Now()
	a.IsUnlocked = true
	a.UnlockedAt = &now
	a.UpdatedAt = now
	return true
}

// Store persists achievement progress keyed by achievement type.
type Store interface {
	// Get returns the stored progress for a type, or shared.ErrNotFound.
	Get(ctx context.Context, achievementType string) (*Achievement, error)

	// List returns all stored achievements.
	List(ctx context.Context) ([]*Achievement, error)

	// Upsert persists the achievement state.
	Upsert(ctx context.Context, a *Achievement) error

	// Unlock persists the unlocked state only while the stored row is
	// still locked, and reports whether this call flipped it. A row
	// already unlocked leaves the store untouched and returns false.
	Unlock(ctx context.Context, a *Achievement) (bool, error)
}
