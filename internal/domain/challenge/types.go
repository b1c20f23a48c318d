// Package challenge implements the abstinence-challenge state machine: a
// challenge watches the intake log for drinks that violate its rule and is
// completed, violated, or abandoned exactly once.
package challenge

import (
	"strings"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
)

// Type identifies a challenge rule.
type Type string

const (
	TypeNoCaffeine     Type = "NO_CAFFEINE"
	TypeNoAlcohol      Type = "NO_ALCOHOL"
	TypeNoSoda         Type = "NO_SODA"
	TypeNoSugar        Type = "NO_SUGAR"
	TypeNoDairy        Type = "NO_DAIRY"
	TypePlantBasedOnly Type = "PLANT_BASED_ONLY"
)

// definition describes one challenge rule: how long it runs and which
// drinks violate it.
type definition struct {
	durationDays int
	violates     func(d *intake.Drink) bool
}

var definitions = map[Type]definition{
	TypeNoCaffeine: {
		durationDays: 14,
		violates:     func(d *intake.Drink) bool { return d.HasCaffeine() },
	},
	TypeNoAlcohol: {
		durationDays: 30,
		violates:     func(d *intake.Drink) bool { return d.IsAlcoholic() },
	},
	TypeNoSoda: {
		durationDays: 14,
		violates:     func(d *intake.Drink) bool { return d.IsSoda() },
	},
	TypeNoSugar: {
		durationDays: 14,
		violates:     func(d *intake.Drink) bool { return d.HasSugar() },
	},
	TypeNoDairy: {
		durationDays: 14,
		violates:     func(d *intake.Drink) bool { return d.HasLactose() },
	},
	TypePlantBasedOnly: {
		durationDays: 7,
		violates:     func(d *intake.Drink) bool { return !d.IsPlantBased() },
	},
}

// fallbackDurationDays applies to stored challenge types without a known
// definition; such challenges run but never register violations.
const fallbackDurationDays = 7

// ParseType normalizes a stored type string. Unknown values are preserved
// as-is so existing rows stay readable.
func ParseType(s string) Type {
	return Type(strings.ToUpper(strings.TrimSpace(s)))
}

// DurationDays returns how long a challenge of this type runs.
func (t Type) DurationDays() int {
	if def, ok := definitions[t]; ok {
		return def.durationDays
	}
	return fallbackDurationDays
}

// Violates reports whether consuming the drink breaks this challenge type.
// Unknown types never violate.
func (t Type) Violates(d *intake.Drink) bool {
	if def, ok := definitions[t]; ok {
		return def.violates(d)
	}
	return false
}

// XPReward is the completion reward: 10 XP per challenge day.
func (t Type) XPReward() int {
	return t.DurationDays() * 10
}

// ChampionAchievement returns the achievement type a flawless completion
// makes eligible, or "" for challenges shorter than 14 days.
func (t Type) ChampionAchievement() string {
	if t.DurationDays() < 14 {
		return ""
	}
	return string(t) + "_CHAMPION"
}

// KnownTypes lists the built-in challenge types.
func KnownTypes() []Type {
	return []Type{
		TypeNoCaffeine,
		TypeNoAlcohol,
		TypeNoSoda,
		TypeNoSugar,
		TypeNoDairy,
		TypePlantBasedOnly,
	}
}
