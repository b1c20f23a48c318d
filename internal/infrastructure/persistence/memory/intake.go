// Package memory provides in-memory implementations of every store
// contract. They back the test suites and let the engine run without
// external storage. All implementations are safe for concurrent use; a
// single mutex per store keeps writes serialized.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// IntakeStore is an in-memory intake.IntakeStore.
type IntakeStore struct {
	mu     sync.RWMutex
	events map[string]*intake.IntakeEvent
}

// NewIntakeStore creates an empty intake store.
func NewIntakeStore() *IntakeStore {
	return &IntakeStore{events: make(map[string]*intake.IntakeEvent)}
}

// Append implements intake.IntakeStore.
func (s *IntakeStore) Append(_ context.Context, event *intake.IntakeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *event
	s.events[event.ID] = &cp
	return nil
}

// Delete implements intake.IntakeStore.
func (s *IntakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return shared.ErrIntakeNotFound
	}
	delete(s.events, id)
	return nil
}

// QueryRange implements intake.IntakeStore.
func (s *IntakeStore) QueryRange(_ context.Context, from, to time.Time) ([]*intake.IntakeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*intake.IntakeEvent
	for _, ev := range s.events {
		if !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			cp := *ev
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// Get implements intake.IntakeStore.
func (s *IntakeStore) Get(_ context.Context, id string) (*intake.IntakeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, shared.ErrIntakeNotFound
	}
	cp := *ev
	return &cp, nil
}

// Latest implements intake.IntakeStore.
func (s *IntakeStore) Latest(_ context.Context) (*intake.IntakeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *intake.IntakeEvent
	for _, ev := range s.events {
		if latest == nil || ev.Timestamp.After(latest.Timestamp) {
			latest = ev
		}
	}
	if latest == nil {
		return nil, shared.ErrIntakeNotFound
	}
	cp := *latest
	return &cp, nil
}

// DrinkCatalog is an in-memory intake.DrinkCatalog pre-seeded with the
// built-in drinks.
type DrinkCatalog struct {
	mu     sync.RWMutex
	drinks map[string]*intake.Drink
	order  []string
}

// NewDrinkCatalog creates a catalog seeded with intake.DefaultCatalog.
func NewDrinkCatalog() *DrinkCatalog {
	c := &DrinkCatalog{drinks: make(map[string]*intake.Drink)}
	for _, d := range intake.DefaultCatalog() {
		cp := d
		c.drinks[d.ID] = &cp
		c.order = append(c.order, d.ID)
	}
	return c
}

// Get implements intake.DrinkCatalog.
func (c *DrinkCatalog) Get(_ context.Context, id string) (*intake.Drink, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.drinks[id]
	if !ok {
		return nil, shared.ErrDrinkNotFound
	}
	cp := *d
	return &cp, nil
}

// List implements intake.DrinkCatalog.
func (c *DrinkCatalog) List(_ context.Context) ([]*intake.Drink, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*intake.Drink, 0, len(c.order))
	for _, id := range c.order {
		cp := *c.drinks[id]
		out = append(out, &cp)
	}
	return out, nil
}

// UpsertCustom implements intake.DrinkCatalog.
func (c *DrinkCatalog) UpsertCustom(_ context.Context, drink *intake.Drink) error {
	if drink == nil || strings.TrimSpace(drink.Name) == "" {
		return shared.ErrInvalidDrink
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.drinks[drink.ID]; ok && !existing.IsCustom {
		return shared.ErrDrinkNotEditable
	}
	if _, ok := c.drinks[drink.ID]; !ok {
		c.order = append(c.order, drink.ID)
	}
	cp := *drink
	cp.IsCustom = true
	c.drinks[drink.ID] = &cp
	return nil
}

// SettingsStore is an in-memory intake.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings intake.Settings
}

// NewSettingsStore creates a settings store holding the defaults.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: intake.DefaultSettings()}
}

// Get implements intake.SettingsStore.
func (s *SettingsStore) Get(_ context.Context) (intake.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.settings
	if settings.DailyGoalMl <= 0 {
		settings.DailyGoalMl = intake.DefaultSettings().DailyGoalMl
	}
	return settings, nil
}

// Update implements intake.SettingsStore.
func (s *SettingsStore) Update(_ context.Context, settings intake.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}
