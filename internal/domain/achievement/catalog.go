package achievement

import "github.com/hydrohub/hydration-hub/internal/domain/challenge"

// RuleKind selects the evaluation strategy for a catalog entry.
type RuleKind string

const (
	// KindStreak - N consecutive goal-met days ending now.
	KindStreak RuleKind = "streak"

	// KindPerfectPeriod - every day of the trailing N-day period met its goal.
	KindPerfectPeriod RuleKind = "perfect_period"

	// KindTotalVolume - cumulative raw volume over a bounded lookback.
	KindTotalVolume RuleKind = "total_volume"

	// KindEarlyBird - days whose first entry lands within an hour after
	// the configured wake-up time.
	KindEarlyBird RuleKind = "early_bird"

	// KindNightOwl - days whose first entry lands within the hour before
	// the configured bed time.
	KindNightOwl RuleKind = "night_owl"

	// KindVariety - distinct drink names ever logged.
	KindVariety RuleKind = "variety"

	// KindChallengeChampion - a flawless completed challenge of a given
	// type with a duration of at least 14 days.
	KindChallengeChampion RuleKind = "challenge_champion"
)

// Definition is one immutable catalog entry. Target is the progressMax of
// the corresponding Achievement; WindowDays bounds lookback scans.
type Definition struct {
	Type          string
	Name          string
	Description   string
	Kind          RuleKind
	Target        int
	WindowDays    int
	XPReward      int
	Character     string // collectible unlocked alongside, "" for none
	ChallengeType challenge.Type
}

// Catalog returns the built-in achievement definitions, evaluation order
// fixed.
func Catalog() []Definition {
	defs := []Definition{
		{Type: "STREAK_7", Name: "Week Warrior", Description: "Meet your daily goal 7 days in a row", Kind: KindStreak, Target: 7, WindowDays: 14, XPReward: 100, Character: "char-sprout"},
		{Type: "STREAK_30", Name: "Monthly Master", Description: "Meet your daily goal 30 days in a row", Kind: KindStreak, Target: 30, WindowDays: 60, XPReward: 500, Character: "char-willow"},
		{Type: "PERFECT_WEEK", Name: "Perfect Week", Description: "A full week with every goal met", Kind: KindPerfectPeriod, Target: 7, WindowDays: 7, XPReward: 150},
		{Type: "PERFECT_MONTH", Name: "Perfect Month", Description: "A full month with every goal met", Kind: KindPerfectPeriod, Target: 30, WindowDays: 30, XPReward: 600, Character: "char-oasis"},
		{Type: "TOTAL_10L", Name: "First Ten Liters", Description: "Log 10 liters in total", Kind: KindTotalVolume, Target: 10000, WindowDays: 365, XPReward: 100},
		{Type: "TOTAL_100L", Name: "Hundred Liter Club", Description: "Log 100 liters in total", Kind: KindTotalVolume, Target: 100000, WindowDays: 365, XPReward: 400, Character: "char-whale"},
		{Type: "EARLY_BIRD", Name: "Early Bird", Description: "Hydrate within an hour of waking on 7 days", Kind: KindEarlyBird, Target: 7, WindowDays: 30, XPReward: 150, Character: "char-rooster"},
		{Type: "NIGHT_OWL", Name: "Night Owl", Description: "Hydrate within an hour of bedtime on 7 days", Kind: KindNightOwl, Target: 7, WindowDays: 30, XPReward: 150, Character: "char-owl"},
		{Type: "VARIETY_MASTER", Name: "Variety Master", Description: "Log 10 different drinks", Kind: KindVariety, Target: 10, XPReward: 200},
	}
	for _, ct := range challenge.KnownTypes() {
		champion := ct.ChampionAchievement()
		if champion == "" {
			continue
		}
		defs = append(defs, Definition{
			Type:          champion,
			Name:          championName(ct),
			Description:   "Complete the challenge without a single violation",
			Kind:          KindChallengeChampion,
			Target:        1,
			XPReward:      300,
			ChallengeType: ct,
		})
	}
	return defs
}

func championName(t challenge.Type) string {
	switch t {
	case challenge.TypeNoCaffeine:
		return "Decaf Champion"
	case challenge.TypeNoAlcohol:
		return "Sober Champion"
	case challenge.TypeNoSoda:
		return "Soda-Free Champion"
	case challenge.TypeNoSugar:
		return "Sugar-Free Champion"
	case challenge.TypeNoDairy:
		return "Dairy-Free Champion"
	default:
		return string(t) + " Champion"
	}
}
