package query

import (
	"context"

	"github.com/hydrohub/hydration-hub/internal/domain/profile"
)

// ProfileView is the progression summary shown to presentation layers.
type ProfileView struct {
	TotalXP              int
	Level                int
	LevelTitle           string
	ProgressToNextLevel  int // percent
	UnlockedCharacters   []string
	UniqueDrinks         int
	TotalDrinksLogged    int
	ChallengesCompleted  int
	AchievementsUnlocked int
}

// GetProfileHandler serves the profile view.
type GetProfileHandler struct {
	ledger *profile.Ledger
}

// NewGetProfileHandler creates the handler.
func NewGetProfileHandler(ledger *profile.Ledger) *GetProfileHandler {
	return &GetProfileHandler{ledger: ledger}
}

// Handle returns the current progression summary.
func (h *GetProfileHandler) Handle(ctx context.Context) (*ProfileView, error) {
	p, err := h.ledger.Profile(ctx)
	if err != nil {
		return nil, err
	}
	level := p.Level()
	return &ProfileView{
		TotalXP:              p.TotalXP.Int(),
		Level:                level.Int(),
		LevelTitle:           level.Title(),
		ProgressToNextLevel:  p.TotalXP.ProgressToNextLevel(),
		UnlockedCharacters:   p.UnlockedCharacters,
		UniqueDrinks:         len(p.UniqueDrinks),
		TotalDrinksLogged:    p.TotalDrinksLogged,
		ChallengesCompleted:  p.ChallengesCompleted,
		AchievementsUnlocked: p.AchievementsUnlocked,
	}, nil
}
