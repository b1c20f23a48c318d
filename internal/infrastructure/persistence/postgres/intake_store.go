package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// INTAKE STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// IntakeStore implements intake.IntakeStore for PostgreSQL.
type IntakeStore struct {
	conn *Connection
}

// NewIntakeStore creates a new IntakeStore.
func NewIntakeStore(conn *Connection) *IntakeStore {
	return &IntakeStore{conn: conn}
}

// Append durably records an intake event.
func (s *IntakeStore) Append(ctx context.Context, event *intake.IntakeEvent) error {
	query := `
		INSERT INTO intake_events (id, drink_id, amount_ml, ts, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.conn.querier(ctx).Exec(ctx, query,
		event.ID,
		event.DrinkID,
		event.AmountMl,
		event.Timestamp,
		event.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.WrapError("intake", "Append", shared.ErrConflict, "intake event already exists", err)
		}
		return fmt.Errorf("failed to append intake event: %w", err)
	}
	return nil
}

// Delete removes an intake event by id.
func (s *IntakeStore) Delete(ctx context.Context, id string) error {
	result, err := s.conn.querier(ctx).Exec(ctx, `DELETE FROM intake_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intake event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrIntakeNotFound
	}
	return nil
}

// QueryRange returns events with timestamp in [from, to), ascending.
func (s *IntakeStore) QueryRange(ctx context.Context, from, to time.Time) ([]*intake.IntakeEvent, error) {
	query := `
		SELECT id, drink_id, amount_ml, ts, created_at
		FROM intake_events
		WHERE ts >= $1 AND ts < $2
		ORDER BY ts ASC
	`

	rows, err := s.conn.querier(ctx).Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query intake events: %w", err)
	}
	defer rows.Close()

	var events []*intake.IntakeEvent
	for rows.Next() {
		var e intake.IntakeEvent
		if err := rows.Scan(&e.ID, &e.DrinkID, &e.AmountMl, &e.Timestamp, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan intake event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// Latest returns the most recently timestamped event.
func (s *IntakeStore) Latest(ctx context.Context) (*intake.IntakeEvent, error) {
	query := `
		SELECT id, drink_id, amount_ml, ts, created_at
		FROM intake_events
		ORDER BY ts DESC
		LIMIT 1
	`

	var e intake.IntakeEvent
	err := s.conn.querier(ctx).QueryRow(ctx, query).
		Scan(&e.ID, &e.DrinkID, &e.AmountMl, &e.Timestamp, &e.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrIntakeNotFound
		}
		return nil, fmt.Errorf("failed to get latest intake event: %w", err)
	}
	return &e, nil
}

// Get returns a single event by id.
func (s *IntakeStore) Get(ctx context.Context, id string) (*intake.IntakeEvent, error) {
	query := `
		SELECT id, drink_id, amount_ml, ts, created_at
		FROM intake_events
		WHERE id = $1
	`

	var e intake.IntakeEvent
	err := s.conn.querier(ctx).QueryRow(ctx, query, id).
		Scan(&e.ID, &e.DrinkID, &e.AmountMl, &e.Timestamp, &e.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrIntakeNotFound
		}
		return nil, fmt.Errorf("failed to get intake event: %w", err)
	}
	return &e, nil
}
