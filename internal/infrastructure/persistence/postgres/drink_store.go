package postgres

import (
	"context"
	"fmt"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DRINK CATALOG IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// DrinkCatalog implements intake.DrinkCatalog for PostgreSQL. Built-in
// drinks are seeded by migration 001; only custom rows are writable.
type DrinkCatalog struct {
	conn *Connection
}

// NewDrinkCatalog creates a new DrinkCatalog.
func NewDrinkCatalog(conn *Connection) *DrinkCatalog {
	return &DrinkCatalog{conn: conn}
}

const drinkColumns = `id, name, icon, category, hydration_multiplier,
	caffeine_mg_per_serving, alcohol_percent, sugar_g_per_serving, is_custom`

// Get returns a drink by id.
func (c *DrinkCatalog) Get(ctx context.Context, id string) (*intake.Drink, error) {
	query := fmt.Sprintf(`SELECT %s FROM drinks WHERE id = $1`, drinkColumns)

	d, err := scanDrink(c.conn.querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink: %w", err)
	}
	return d, nil
}

// List returns the full catalog, built-ins first.
func (c *DrinkCatalog) List(ctx context.Context) ([]*intake.Drink, error) {
	query := fmt.Sprintf(`SELECT %s FROM drinks ORDER BY is_custom ASC, name ASC`, drinkColumns)

	rows, err := c.conn.querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	defer rows.Close()

	var drinks []*intake.Drink
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan drink: %w", err)
		}
		drinks = append(drinks, d)
	}
	return drinks, rows.Err()
}

// UpsertCustom creates or updates a user-defined drink. Built-in entries
// are not editable.
func (c *DrinkCatalog) UpsertCustom(ctx context.Context, drink *intake.Drink) error {
	if drink == nil || !drink.IsCustom {
		return shared.ErrDrinkNotEditable
	}

	query := `
		INSERT INTO drinks (id, name, icon, category, hydration_multiplier,
			caffeine_mg_per_serving, alcohol_percent, sugar_g_per_serving, is_custom)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			icon = EXCLUDED.icon,
			category = EXCLUDED.category,
			hydration_multiplier = EXCLUDED.hydration_multiplier,
			caffeine_mg_per_serving = EXCLUDED.caffeine_mg_per_serving,
			alcohol_percent = EXCLUDED.alcohol_percent,
			sugar_g_per_serving = EXCLUDED.sugar_g_per_serving
		WHERE drinks.is_custom
	`

	result, err := c.conn.querier(ctx).Exec(ctx, query,
		drink.ID,
		drink.Name,
		drink.Icon,
		string(drink.Category),
		drink.HydrationMultiplier,
		drink.CaffeineMgPerServing,
		drink.AlcoholPercent,
		drink.SugarGPerServing,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert drink: %w", err)
	}

	// Conflicting with a built-in row leaves it untouched.
	if result.RowsAffected() == 0 {
		return shared.ErrDrinkNotEditable
	}
	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrink(row rowScanner) (*intake.Drink, error) {
	var d intake.Drink
	var category string
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Icon,
		&category,
		&d.HydrationMultiplier,
		&d.CaffeineMgPerServing,
		&d.AlcoholPercent,
		&d.SugarGPerServing,
		&d.IsCustom,
	)
	if err != nil {
		return nil, err
	}
	d.Category = intake.ParseCategory(category)
	return &d, nil
}
