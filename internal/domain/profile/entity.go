// Package profile holds the user's progression state: accumulated XP, the
// derived level, unlocked collectible characters, and lifetime drink
// counters. There is exactly one profile per installation.
package profile

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// DefaultProfileID is the id of the singleton profile row.
const DefaultProfileID = "default"

// UserProfile is the progression aggregate.
type UserProfile struct {
	ID                   string
	TotalXP              shared.XP
	UnlockedCharacters   []string // insertion-ordered set
	UniqueDrinks         []string // insertion-ordered set of drink names
	TotalDrinksLogged    int
	ChallengesCompleted  int
	AchievementsUnlocked int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewUserProfile creates an empty profile.
func NewUserProfile() *UserProfile {
	now := time.Now()
	return &UserProfile{
		ID:        DefaultProfileID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Level returns the level derived from total XP.
func (p *UserProfile) Level() shared.Level {
	return p.TotalXP.Level()
}

// HasCharacter reports set membership of a character id.
func (p *UserProfile) HasCharacter(id string) bool {
	for _, c := range p.UnlockedCharacters {
		if c == id {
			return true
		}
	}
	return false
}

// addCharacter adds a character id; returns false when already present.
func (p *UserProfile) addCharacter(id string) bool {
	if p.HasCharacter(id) {
		return false
	}
	p.UnlockedCharacters = append(p.UnlockedCharacters, id)
	return true
}

// hasDrink reports whether the drink name is already in the unique set.
func (p *UserProfile) hasDrink(name string) bool {
	for _, d := range p.UniqueDrinks {
		if d == name {
			return true
		}
	}
	return false
}

// Store persists the singleton profile.
type Store interface {
	// Get returns the profile, creating an empty one on first access.
	Get(ctx context.Context) (*UserProfile, error)

	// Update persists the profile state.
	Update(ctx context.Context, p *UserProfile) error
}
