package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ChallengeStore is an in-memory challenge.Store.
type ChallengeStore struct {
	mu         sync.RWMutex
	challenges map[string]*challenge.Challenge
	evaluated  map[string]struct{} // challengeID + "\x00" + eventID
}

// NewChallengeStore creates an empty challenge store.
func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{
		challenges: make(map[string]*challenge.Challenge),
		evaluated:  make(map[string]struct{}),
	}
}

func cloneChallenge(c *challenge.Challenge) *challenge.Challenge {
	cp := *c
	cp.Violations = append([]challenge.Violation(nil), c.Violations...)
	return &cp
}

// Create implements challenge.Store.
func (s *ChallengeStore) Create(_ context.Context, c *challenge.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.challenges {
		if existing.Type == c.Type && existing.Status == challenge.StatusActive {
			return shared.ErrChallengeTypeActive
		}
	}
	s.challenges[c.ID] = cloneChallenge(c)
	return nil
}

// Get implements challenge.Store.
func (s *ChallengeStore) Get(_ context.Context, id string) (*challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.challenges[id]
	if !ok {
		return nil, shared.ErrChallengeNotFound
	}
	return cloneChallenge(c), nil
}

// Update implements challenge.Store.
func (s *ChallengeStore) Update(_ context.Context, c *challenge.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[c.ID]; !ok {
		return shared.ErrChallengeNotFound
	}
	s.challenges[c.ID] = cloneChallenge(c)
	return nil
}

// FindActiveByType implements challenge.Store.
func (s *ChallengeStore) FindActiveByType(_ context.Context, t challenge.Type) (*challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.challenges {
		if c.Type == t && c.Status == challenge.StatusActive {
			return cloneChallenge(c), nil
		}
	}
	return nil, shared.ErrChallengeNotFound
}

// ListActive implements challenge.Store.
func (s *ChallengeStore) ListActive(_ context.Context) ([]*challenge.Challenge, error) {
	return s.listByStatus(challenge.StatusActive)
}

// ListCompleted implements challenge.Store.
func (s *ChallengeStore) ListCompleted(_ context.Context) ([]*challenge.Challenge, error) {
	return s.listByStatus(challenge.StatusCompleted)
}

func (s *ChallengeStore) listByStatus(status challenge.Status) ([]*challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*challenge.Challenge
	for _, c := range s.challenges {
		if c.Status == status {
			out = append(out, cloneChallenge(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// List implements challenge.Store.
func (s *ChallengeStore) List(_ context.Context) ([]*challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*challenge.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		out = append(out, cloneChallenge(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkEvaluated implements challenge.Store. Returns true exactly once per
// (challenge, event) pair.
func (s *ChallengeStore) MarkEvaluated(_ context.Context, challengeID, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := challengeID + "\x00" + eventID
	if _, ok := s.evaluated[key]; ok {
		return false, nil
	}
	s.evaluated[key] = struct{}{}
	return true, nil
}
