package challenge

import (
	"time"

	"github.com/google/uuid"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/timeutil"
)

// Status is the lifecycle state of a challenge. Active is the only
// non-terminal state; every transition out of it is final.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusViolated  Status = "violated"
	StatusAbandoned Status = "abandoned"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s != StatusActive
}

// Violation records the drink that broke a challenge.
type Violation struct {
	ID          string
	ChallengeID string
	Date        time.Time
	DrinkName   string
	DrinkIcon   string
}

// Challenge is the aggregate root of one challenge run.
type Challenge struct {
	ID         string
	Type       Type
	Status     Status
	StartDate  time.Time // start of day, local
	EndDate    time.Time // start of day, local; last day is EndDate-1
	Violations []Violation
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewChallenge creates an active challenge beginning on the calendar day of
// startDate. The end date is startDate plus the type's duration.
func NewChallenge(t Type, startDate time.Time, loc *time.Location) *Challenge {
	day := timeutil.StartOfDay(startDate, loc)
	now := time.Now()
	return &Challenge{
		ID:        uuid.NewString(),
		Type:      t,
		Status:    StatusActive,
		StartDate: day,
		EndDate:   day.AddDate(0, 0, t.DurationDays()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Violate transitions Active → Violated and records the offending drink.
func (c *Challenge) Violate(date time.Time, drinkName, drinkIcon string) error {
	if c.Status != StatusActive {
		return shared.ErrChallengeNotActive
	}
	c.Violations = append(c.Violations, Violation{
		ID:          uuid.NewString(),
		ChallengeID: c.ID,
		Date:        date,
		DrinkName:   drinkName,
		DrinkIcon:   drinkIcon,
	})
	c.Status = StatusViolated
	c.UpdatedAt = time.Now()
	return nil
}

// MarkCompleted transitions Active → Completed. The caller is responsible
// for checking the end date.
func (c *Challenge) MarkCompleted() error {
	if c.Status != StatusActive {
		return shared.ErrChallengeNotActive
	}
	c.Status = StatusCompleted
	c.UpdatedAt = time.Now()
	return nil
}

// MarkAbandoned transitions Active → Abandoned.
func (c *Challenge) MarkAbandoned() error {
	if c.Status != StatusActive {
		return shared.ErrChallengeNotActive
	}
	c.Status = StatusAbandoned
	c.UpdatedAt = time.Now()
	return nil
}

// DurationDays returns the challenge length in calendar days.
func (c *Challenge) DurationDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}

// Covers reports whether the timestamp falls within the challenge window.
func (c *Challenge) Covers(t time.Time) bool {
	return !t.Before(c.StartDate) && t.Before(c.EndDate)
}

// IsFlawless reports a completed run without a single violation.
func (c *Challenge) IsFlawless() bool {
	return c.Status == StatusCompleted && len(c.Violations) == 0
}
