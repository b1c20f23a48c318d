package postgres

import (
	"context"
	"fmt"

	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHALLENGE STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ChallengeStore implements challenge.Store for PostgreSQL. The one-active-
// per-type rule is enforced by a partial unique index on the challenges
// table, evaluation dedup by the (challenge_id, event_id) primary key on
// challenge_evaluations.
type ChallengeStore struct {
	conn *Connection
}

// NewChallengeStore creates a new ChallengeStore.
func NewChallengeStore(conn *Connection) *ChallengeStore {
	return &ChallengeStore{conn: conn}
}

// Create persists a new challenge.
func (s *ChallengeStore) Create(ctx context.Context, c *challenge.Challenge) error {
	query := `
		INSERT INTO challenges (id, challenge_type, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.conn.querier(ctx).Exec(ctx, query,
		c.ID,
		string(c.Type),
		string(c.Status),
		c.StartDate,
		c.EndDate,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrChallengeTypeActive
		}
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	return nil
}

// Get returns a challenge by id, violations included.
func (s *ChallengeStore) Get(ctx context.Context, id string) (*challenge.Challenge, error) {
	query := `
		SELECT id, challenge_type, status, start_date, end_date, created_at, updated_at
		FROM challenges
		WHERE id = $1
	`

	var c challenge.Challenge
	var typ, status string
	err := s.conn.querier(ctx).QueryRow(ctx, query, id).
		Scan(&c.ID, &typ, &status, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	c.Type = challenge.Type(typ)
	c.Status = challenge.Status(status)

	if err := s.loadViolations(ctx, map[string]*challenge.Challenge{c.ID: &c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update persists the current state of a challenge. Violations are written
// insert-only; a violation row never changes after the fact.
func (s *ChallengeStore) Update(ctx context.Context, c *challenge.Challenge) error {
	query := `
		UPDATE challenges
		SET status = $1, start_date = $2, end_date = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.conn.querier(ctx).Exec(ctx, query,
		string(c.Status),
		c.StartDate,
		c.EndDate,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrChallengeNotFound
	}

	for _, v := range c.Violations {
		insert := `
			INSERT INTO challenge_violations (id, challenge_id, violation_date, drink_name, drink_icon)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`
		if _, err := s.conn.querier(ctx).Exec(ctx, insert,
			v.ID, v.ChallengeID, v.Date, v.DrinkName, v.DrinkIcon,
		); err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}
	return nil
}

// FindActiveByType returns the active challenge of the given type.
func (s *ChallengeStore) FindActiveByType(ctx context.Context, t challenge.Type) (*challenge.Challenge, error) {
	query := `
		SELECT id, challenge_type, status, start_date, end_date, created_at, updated_at
		FROM challenges
		WHERE challenge_type = $1 AND status = 'active'
	`

	var c challenge.Challenge
	var typ, status string
	err := s.conn.querier(ctx).QueryRow(ctx, query, string(t)).
		Scan(&c.ID, &typ, &status, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to find active challenge: %w", err)
	}
	c.Type = challenge.Type(typ)
	c.Status = challenge.Status(status)

	if err := s.loadViolations(ctx, map[string]*challenge.Challenge{c.ID: &c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns all active challenges.
func (s *ChallengeStore) ListActive(ctx context.Context) ([]*challenge.Challenge, error) {
	return s.list(ctx, `WHERE status = 'active'`)
}

// List returns all challenges, newest first.
func (s *ChallengeStore) List(ctx context.Context) ([]*challenge.Challenge, error) {
	return s.list(ctx, ``)
}

// ListCompleted returns all completed challenges.
func (s *ChallengeStore) ListCompleted(ctx context.Context) ([]*challenge.Challenge, error) {
	return s.list(ctx, `WHERE status = 'completed'`)
}

func (s *ChallengeStore) list(ctx context.Context, where string) ([]*challenge.Challenge, error) {
	query := fmt.Sprintf(`
		SELECT id, challenge_type, status, start_date, end_date, created_at, updated_at
		FROM challenges
		%s
		ORDER BY created_at DESC
	`, where)

	rows, err := s.conn.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*challenge.Challenge
	byID := make(map[string]*challenge.Challenge)
	for rows.Next() {
		var c challenge.Challenge
		var typ, status string
		if err := rows.Scan(&c.ID, &typ, &status, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		c.Type = challenge.Type(typ)
		c.Status = challenge.Status(status)
		challenges = append(challenges, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadViolations(ctx, byID); err != nil {
		return nil, err
	}
	return challenges, nil
}

// loadViolations attaches violations to the given challenges.
func (s *ChallengeStore) loadViolations(ctx context.Context, byID map[string]*challenge.Challenge) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query := `
		SELECT id, challenge_id, violation_date, drink_name, drink_icon
		FROM challenge_violations
		WHERE challenge_id = ANY($1)
		ORDER BY violation_date ASC
	`

	rows, err := s.conn.querier(ctx).Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v challenge.Violation
		if err := rows.Scan(&v.ID, &v.ChallengeID, &v.Date, &v.DrinkName, &v.DrinkIcon); err != nil {
			return fmt.Errorf("failed to scan violation: %w", err)
		}
		if c, ok := byID[v.ChallengeID]; ok {
			c.Violations = append(c.Violations, v)
		}
	}
	return rows.Err()
}

// MarkEvaluated records that an intake event has been evaluated against a
// challenge. Returns true exactly once per (challenge, event) pair.
func (s *ChallengeStore) MarkEvaluated(ctx context.Context, challengeID, eventID string) (bool, error) {
	query := `
		INSERT INTO challenge_evaluations (challenge_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (challenge_id, event_id) DO NOTHING
	`

	result, err := s.conn.querier(ctx).Exec(ctx, query, challengeID, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to mark evaluation: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
