// Package shared contains common domain types, errors, events, and value
// objects that are used across all domain packages.
package shared

import "time"

// ═══════════════════════════════════════════════════════════════════════════
// XP Value Object (Experience Points)
// ═══════════════════════════════════════════════════════════════════════════

// XP represents accumulated experience points.
type XP int

const (
	MinXP XP = 0
	MaxXP XP = 1000000 // 1 million XP cap
)

// Int returns the underlying int value.
func (x XP) Int() int {
	return int(x)
}

// Add adds XP and returns the result, clamped to [MinXP, MaxXP].
func (x XP) Add(amount int) XP {
	result := XP(int(x) + amount)
	if result > MaxXP {
		return MaxXP
	}
	if result < MinXP {
		return MinXP
	}
	return result
}

// Level calculates the level for this XP total. The level is a
// deterministic, non-decreasing step function of total XP.
func (x XP) Level() Level {
	level := MinLevel
	for level < MaxLevel && (level+1).RequiredXP() <= int(x) {
		level++
	}
	return level
}

// ProgressToNextLevel returns percentage progress to the next level (0-100).
func (x XP) ProgressToNextLevel() int {
	current := x.Level()
	if current >= MaxLevel {
		return 100
	}
	floor := current.RequiredXP()
	ceil := (current + 1).RequiredXP()
	if ceil == floor {
		return 100
	}
	return (int(x) - floor) * 100 / (ceil - floor)
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Level represents a profile's progression level.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 100
)

// Int returns the underlying int value.
func (l Level) Int() int {
	return int(l)
}

// RequiredXP returns the total XP required to reach this level:
// 250·(l−1)·l, i.e. 0, 500, 1500, 3000, ...
func (l Level) RequiredXP() int {
	if l <= MinLevel {
		return 0
	}
	return 250 * int(l-1) * int(l)
}

// Title returns a human-readable title for the level.
func (l Level) Title() string {
	switch {
	case l < 5:
		return "Droplet"
	case l < 10:
		return "Puddle"
	case l < 20:
		return "Stream"
	case l < 30:
		return "River"
	case l < 50:
		return "Lake"
	case l < 75:
		return "Sea"
	default:
		return "Ocean"
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// TimeRange Value Object
// ═══════════════════════════════════════════════════════════════════════════

// TimeRange represents a half-open time period [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// IsValid checks if the time range is valid.
func (t TimeRange) IsValid() bool {
	return !t.From.IsZero() && !t.To.IsZero() && !t.From.After(t.To)
}

// Duration returns the duration of the time range.
func (t TimeRange) Duration() time.Duration {
	return t.To.Sub(t.From)
}

// Contains checks if a time is within the range.
func (t TimeRange) Contains(tm time.Time) bool {
	return !tm.Before(t.From) && tm.Before(t.To)
}

// LastNDays returns a TimeRange covering the last n days ending now.
func LastNDays(n int) TimeRange {
	now := time.Now()
	return TimeRange{From: now.AddDate(0, 0, -n), To: now}
}
