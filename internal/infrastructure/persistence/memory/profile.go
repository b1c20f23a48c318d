package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ProfileStore is an in-memory profile.Store holding the singleton profile.
type ProfileStore struct {
	mu      sync.RWMutex
	profile *profile.UserProfile
}

// NewProfileStore creates a profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

func cloneProfile(p *profile.UserProfile) *profile.UserProfile {
	cp := *p
	cp.UnlockedCharacters = append([]string(nil), p.UnlockedCharacters...)
	cp.UniqueDrinks = append([]string(nil), p.UniqueDrinks...)
	return &cp
}

// Get implements profile.Store, creating an empty profile on first access.
func (s *ProfileStore) Get(_ context.Context) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		s.profile = profile.NewUserProfile()
	}
	return cloneProfile(s.profile), nil
}

// Update implements profile.Store.
func (s *ProfileStore) Update(_ context.Context, p *profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneProfile(p)
	cp.UpdatedAt = time.Now()
	s.profile = cp
	return nil
}

// AchievementStore is an in-memory achievement.Store.
type AchievementStore struct {
	mu           sync.RWMutex
	achievements map[string]*achievement.Achievement
}

// NewAchievementStore creates an empty achievement store.
func NewAchievementStore() *AchievementStore {
	return &AchievementStore{achievements: make(map[string]*achievement.Achievement)}
}

func cloneAchievement(a *achievement.Achievement) *achievement.Achievement {
	cp := *a
	if a.UnlockedAt != nil {
		ts := *a.UnlockedAt
		cp.UnlockedAt = &ts
	}
	return &cp
}

// Get implements achievement.Store.
func (s *AchievementStore) Get(_ context.Context, achievementType string) (*achievement.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.achievements[achievementType]
	if !ok {
		return nil, shared.ErrAchievementNotFound
	}
	return cloneAchievement(a), nil
}

// List implements achievement.Store.
func (s *AchievementStore) List(_ context.Context) ([]*achievement.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*achievement.Achievement, 0, len(s.achievements))
	for _, a := range s.achievements {
		out = append(out, cloneAchievement(a))
	}
	return out, nil
}

// Upsert implements achievement.Store.
func (s *AchievementStore) Upsert(_ context.Context, a *achievement.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements[a.Type] = cloneAchievement(a)
	return nil
}

// Unlock implements achievement.Store. The check and the write share the
// store mutex, so only one caller ever flips a row.
func (s *AchievementStore) Unlock(_ context.Context, a *achievement.Achievement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.achievements[a.Type]; ok && existing.IsUnlocked {
		return false, nil
	}
	s.achievements[a.Type] = cloneAchievement(a)
	return true, nil
}

// UnitOfWork is an in-memory shared.UnitOfWork. A single mutex serializes
// scopes, which also provides the single-writer guarantee for profile
// mutations in storage-free embeddings.
type UnitOfWork struct {
	mu sync.Mutex
}

// NewUnitOfWork creates a unit of work.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

// WithinTx implements shared.UnitOfWork. There is no rollback; callers get
// atomicity with respect to other scopes, not crash atomicity.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx)
}
