package intake

import (
	"context"
	"time"
)

// IntakeStore is the append-mostly log of intake events.
type IntakeStore interface {
	// Append durably records an intake event.
	Append(ctx context.Context, event *IntakeEvent) error

	// Delete removes an intake event by id. Returns shared.ErrNotFound
	// when the id is unknown.
	Delete(ctx context.Context, id string) error

	// QueryRange returns events with Timestamp in [from, to), ordered by
	// Timestamp ascending.
	QueryRange(ctx context.Context, from, to time.Time) ([]*IntakeEvent, error)

	// Get returns a single event by id.
	Get(ctx context.Context, id string) (*IntakeEvent, error)

	// Latest returns the most recently timestamped event. Returns
	// shared.ErrNotFound when the log is empty.
	Latest(ctx context.Context) (*IntakeEvent, error)
}

// DrinkCatalog resolves drink ids to definitions.
type DrinkCatalog interface {
	// Get returns a drink by id. Returns shared.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Drink, error)

	// List returns the full catalog, built-ins first.
	List(ctx context.Context) ([]*Drink, error)

	// UpsertCustom creates or updates a user-defined drink. Built-in
	// entries are not editable.
	UpsertCustom(ctx context.Context, drink *Drink) error
}

// SettingsStore holds the user's hydration preferences.
type SettingsStore interface {
	// Get returns the current settings, falling back to defaults field by
	// field when stored values are missing or malformed.
	Get(ctx context.Context) (Settings, error)

	// Update replaces the settings after validation.
	Update(ctx context.Context, settings Settings) error
}
