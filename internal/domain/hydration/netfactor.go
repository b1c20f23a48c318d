// Package hydration computes all derived hydration figures: net factors,
// daily progress, weekly statistics, and streaks. Nothing here is stored;
// every figure is recomputed on demand from the intake log.
package hydration

import "github.com/hydrohub/hydration-hub/internal/domain/intake"

// GoalBasis selects which volume is compared against the daily goal.
type GoalBasis string

const (
	// GoalBasisRaw compares the summed raw volume against the goal.
	GoalBasisRaw GoalBasis = "raw"

	// GoalBasisNet compares the net-hydration volume against the goal.
	// This is the default basis, applied uniformly to streaks, weekly
	// statistics, and achievement evaluation.
	GoalBasisNet GoalBasis = "net"
)

// ParseGoalBasis normalizes a configured basis, falling back to net.
func ParseGoalBasis(s string) GoalBasis {
	if GoalBasis(s) == GoalBasisRaw {
		return GoalBasisRaw
	}
	return GoalBasisNet
}

// Config tunes the net-factor formula and goal evaluation.
type Config struct {
	GoalBasis GoalBasis

	// NetFloor is the lower bound of the net factor. Heavily alcoholic
	// drinks bottom out here instead of diverging.
	NetFloor float64

	// CaffeinePenaltyMax is the asymptotic caffeine penalty; the penalty
	// saturates toward this value as caffeine per serving grows.
	CaffeinePenaltyMax float64

	// CaffeineHalfSaturationMg is the caffeine amount at which half of
	// CaffeinePenaltyMax applies.
	CaffeineHalfSaturationMg float64

	// AlcoholPenaltyPerPercent scales the alcohol penalty linearly in ABV,
	// capped at AlcoholPenaltyMax.
	AlcoholPenaltyPerPercent float64
	AlcoholPenaltyMax        float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		GoalBasis:                GoalBasisNet,
		NetFloor:                 -1.0,
		CaffeinePenaltyMax:       0.5,
		CaffeineHalfSaturationMg: 100,
		AlcoholPenaltyPerPercent: 0.08,
		AlcoholPenaltyMax:        1.5,
	}
}

// NetFactor returns the effective hydration factor of a drink:
// hydrationMultiplier minus the caffeine and alcohol penalties, floored at
// cfg.NetFloor. The result is monotonically decreasing in both caffeine
// and alcohol content and can be negative for dehydrating drinks.
func NetFactor(cfg Config, drink *intake.Drink) float64 {
	factor := drink.HydrationMultiplier
	factor -= caffeinePenalty(cfg, drink.CaffeineMgPerServing)
	factor -= alcoholPenalty(cfg, drink.AlcoholPercent)
	if factor < cfg.NetFloor {
		factor = cfg.NetFloor
	}
	return factor
}

// caffeinePenalty saturates: each additional milligram adds less, and the
// penalty never exceeds CaffeinePenaltyMax.
func caffeinePenalty(cfg Config, caffeineMg float64) float64 {
	if caffeineMg <= 0 || cfg.CaffeinePenaltyMax <= 0 {
		return 0
	}
	half := cfg.CaffeineHalfSaturationMg
	if half <= 0 {
		half = 1
	}
	return cfg.CaffeinePenaltyMax * caffeineMg / (caffeineMg + half)
}

// alcoholPenalty grows linearly in ABV up to AlcoholPenaltyMax.
func alcoholPenalty(cfg Config, alcoholPercent float64) float64 {
	if alcoholPercent <= 0 {
		return 0
	}
	penalty := cfg.AlcoholPenaltyPerPercent * alcoholPercent
	if penalty > cfg.AlcoholPenaltyMax {
		penalty = cfg.AlcoholPenaltyMax
	}
	return penalty
}
