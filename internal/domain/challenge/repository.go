package challenge

import "context"

// Store persists challenges, their violations, and the per-event
// evaluation marks used for dedup.
type Store interface {
	// Create persists a new challenge.
	Create(ctx context.Context, c *Challenge) error

	// Get returns a challenge by id. Returns shared.ErrNotFound for
	// unknown ids.
	Get(ctx context.Context, id string) (*Challenge, error)

	// Update persists the current state of a challenge, violations included.
	Update(ctx context.Context, c *Challenge) error

	// FindActiveByType returns the active challenge of the given type, or
	// shared.ErrNotFound when none is running.
	FindActiveByType(ctx context.Context, t Type) (*Challenge, error)

	// ListActive returns all active challenges.
	ListActive(ctx context.Context) ([]*Challenge, error)

	// List returns all challenges, newest first.
	List(ctx context.Context) ([]*Challenge, error)

	// ListCompleted returns all completed challenges.
	ListCompleted(ctx context.Context) ([]*Challenge, error)

	// MarkEvaluated records that the intake event has been evaluated
	// against the challenge. It returns true exactly once per
	// (challenge, event) pair; redelivered events return false.
	MarkEvaluated(ctx context.Context, challengeID, eventID string) (bool, error)
}
