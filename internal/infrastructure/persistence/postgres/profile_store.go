package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfileStore implements profile.Store for PostgreSQL. The profile is a
// singleton row created on first access.
type ProfileStore struct {
	conn *Connection
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(conn *Connection) *ProfileStore {
	return &ProfileStore{conn: conn}
}

// Get returns the profile, creating an empty one on first access.
func (s *ProfileStore) Get(ctx context.Context) (*profile.UserProfile, error) {
	query := `
		SELECT id, total_xp, unlocked_characters, unique_drinks,
			   total_drinks_logged, challenges_completed, achievements_unlocked,
			   created_at, updated_at
		FROM profile
		WHERE id = $1
	`

	var p profile.UserProfile
	var totalXP int
	var charactersJSON, drinksJSON []byte
	err := s.conn.querier(ctx).QueryRow(ctx, query, profile.DefaultProfileID).Scan(
		&p.ID,
		&totalXP,
		&charactersJSON,
		&drinksJSON,
		&p.TotalDrinksLogged,
		&p.ChallengesCompleted,
		&p.AchievementsUnlocked,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return s.create(ctx)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.TotalXP = shared.XP(totalXP)
	if err := json.Unmarshal(charactersJSON, &p.UnlockedCharacters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal characters: %w", err)
	}
	if err := json.Unmarshal(drinksJSON, &p.UniqueDrinks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drinks: %w", err)
	}
	return &p, nil
}

// create inserts the empty singleton row. A concurrent first access loses
// the insert race and reads the winner's row.
func (s *ProfileStore) create(ctx context.Context) (*profile.UserProfile, error) {
	p := profile.NewUserProfile()

	query := `
		INSERT INTO profile (id, total_xp, unlocked_characters, unique_drinks,
			total_drinks_logged, challenges_completed, achievements_unlocked,
			created_at, updated_at)
		VALUES ($1, 0, '[]'::jsonb, '[]'::jsonb, 0, 0, 0, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := s.conn.querier(ctx).Exec(ctx, query, p.ID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return s.Get(ctx)
	}
	return p, nil
}

// Update persists the profile state.
func (s *ProfileStore) Update(ctx context.Context, p *profile.UserProfile) error {
	charactersJSON, err := json.Marshal(jsonArray(p.UnlockedCharacters))
	if err != nil {
		return fmt.Errorf("failed to marshal characters: %w", err)
	}
	drinksJSON, err := json.Marshal(jsonArray(p.UniqueDrinks))
	if err != nil {
		return fmt.Errorf("failed to marshal drinks: %w", err)
	}

	query := `
		UPDATE profile SET
			total_xp = $1,
			unlocked_characters = $2,
			unique_drinks = $3,
			total_drinks_logged = $4,
			challenges_completed = $5,
			achievements_unlocked = $6,
			updated_at = $7
		WHERE id = $8
	`

	result, err := s.conn.querier(ctx).Exec(ctx, query,
		p.TotalXP.Int(),
		charactersJSON,
		drinksJSON,
		p.TotalDrinksLogged,
		p.ChallengesCompleted,
		p.AchievementsUnlocked,
		time.Now().UTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrProfileNotFound
	}
	return nil
}

// jsonArray keeps nil slices serializing as [] instead of null.
func jsonArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
