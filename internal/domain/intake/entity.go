// Package intake contains the intake event entity, the drink catalog types,
// and the store contracts the engines read from. An intake event is an
// append-only fact; all derived figures are recomputed from the log.
package intake

import (
	"time"

	"github.com/google/uuid"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// IntakeEvent represents a single logged drink entry.
type IntakeEvent struct {
	ID        string
	DrinkID   string
	AmountMl  int
	Timestamp time.Time
	CreatedAt time.Time
}

// NewIntakeEvent creates a validated intake event.
func NewIntakeEvent(drinkID string, amountMl int, timestamp time.Time) (*IntakeEvent, error) {
	if amountMl <= 0 {
		return nil, shared.ErrInvalidAmount
	}
	if drinkID == "" {
		return nil, shared.NewDomainError("intake", "Validate", shared.ErrValidation, "drink id is required")
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return &IntakeEvent{
		ID:        uuid.NewString(),
		DrinkID:   drinkID,
		AmountMl:  amountMl,
		Timestamp: timestamp,
		CreatedAt: time.Now(),
	}, nil
}

// Settings holds the per-user hydration preferences the engines consult.
// Malformed stored values never surface: the store falls back to these
// defaults field by field.
type Settings struct {
	DailyGoalMl int
	WakeUpTime  string // "HH:MM"
	BedTime     string // "HH:MM"
	Timezone    string // IANA name
}

// DefaultSettings are used when no settings row exists or a field is unusable.
func DefaultSettings() Settings {
	return Settings{
		DailyGoalMl: 2000,
		WakeUpTime:  "07:00",
		BedTime:     "23:00",
		Timezone:    "UTC",
	}
}

// Validate checks settings invariants for writes. Reads never validate,
// they fall back.
func (s Settings) Validate() error {
	if s.DailyGoalMl <= 0 {
		return shared.ErrInvalidGoal
	}
	return nil
}
