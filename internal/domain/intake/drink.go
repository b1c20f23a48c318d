package intake

import (
	"strings"

	"github.com/google/uuid"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// DrinkCategory classifies a drink for challenge predicates and net-factor
// input. Unknown stored values parse to CategoryCustom rather than failing.
type DrinkCategory string

const (
	CategoryWater     DrinkCategory = "water"
	CategoryTea       DrinkCategory = "tea"
	CategoryCoffee    DrinkCategory = "coffee"
	CategoryJuice     DrinkCategory = "juice"
	CategorySoda      DrinkCategory = "soda"
	CategoryMilk      DrinkCategory = "milk"
	CategoryPlantMilk DrinkCategory = "plant_milk"
	CategoryBeer      DrinkCategory = "beer"
	CategoryWine      DrinkCategory = "wine"
	CategoryEnergy    DrinkCategory = "energy"
	CategoryCustom    DrinkCategory = "custom"
)

// ParseCategory normalizes a stored category string. Unknown values fall
// back to CategoryCustom so malformed rows stay usable.
func ParseCategory(s string) DrinkCategory {
	switch DrinkCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryWater:
		return CategoryWater
	case CategoryTea:
		return CategoryTea
	case CategoryCoffee:
		return CategoryCoffee
	case CategoryJuice:
		return CategoryJuice
	case CategorySoda:
		return CategorySoda
	case CategoryMilk:
		return CategoryMilk
	case CategoryPlantMilk:
		return CategoryPlantMilk
	case CategoryBeer:
		return CategoryBeer
	case CategoryWine:
		return CategoryWine
	case CategoryEnergy:
		return CategoryEnergy
	default:
		return CategoryCustom
	}
}

// Drink describes a catalog entry. The hydration properties feed the net
// factor; the category flags feed challenge violation predicates.
type Drink struct {
	ID                   string
	Name                 string
	Icon                 string
	Category             DrinkCategory
	HydrationMultiplier  float64 // 1.0 for water, lower for diuretics
	CaffeineMgPerServing float64
	AlcoholPercent       float64 // ABV
	SugarGPerServing     float64
	IsCustom             bool
}

// NewCustomDrink creates a user-defined drink with validation.
func NewCustomDrink(name, icon string, category DrinkCategory, multiplier, caffeineMg, alcoholPercent, sugarG float64) (*Drink, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.ErrInvalidDrink
	}
	if multiplier < 0 || caffeineMg < 0 || alcoholPercent < 0 || alcoholPercent > 100 || sugarG < 0 {
		return nil, shared.ErrInvalidDrink
	}
	return &Drink{
		ID:                   uuid.NewString(),
		Name:                 strings.TrimSpace(name),
		Icon:                 icon,
		Category:             category,
		HydrationMultiplier:  multiplier,
		CaffeineMgPerServing: caffeineMg,
		AlcoholPercent:       alcoholPercent,
		SugarGPerServing:     sugarG,
		IsCustom:             true,
	}, nil
}

// IsAlcoholic reports whether the drink contributes an alcohol penalty.
func (d *Drink) IsAlcoholic() bool {
	return d.AlcoholPercent > 0 || d.Category == CategoryBeer || d.Category == CategoryWine
}

// HasCaffeine reports whether the drink contributes a caffeine penalty.
func (d *Drink) HasCaffeine() bool {
	return d.CaffeineMgPerServing > 0
}

// IsSoda reports whether the drink counts as soda.
func (d *Drink) IsSoda() bool {
	return d.Category == CategorySoda
}

// HasSugar reports whether the drink counts as sugary.
func (d *Drink) HasSugar() bool {
	return d.SugarGPerServing > 0 || d.Category == CategorySoda || d.Category == CategoryJuice
}

// HasLactose reports whether the drink counts as dairy.
func (d *Drink) HasLactose() bool {
	return d.Category == CategoryMilk
}

// IsPlantBased reports whether the drink satisfies a plant-based-only rule.
func (d *Drink) IsPlantBased() bool {
	switch d.Category {
	case CategoryMilk, CategoryBeer, CategoryWine, CategoryEnergy, CategorySoda:
		return false
	default:
		return !d.IsAlcoholic()
	}
}

// DefaultCatalog returns the built-in drink catalog seeded on first run.
// IDs are stable so intake rows survive re-seeding.
func DefaultCatalog() []Drink {
	return []Drink{
		{ID: "drink-water", Name: "Water", Icon: "💧", Category: CategoryWater, HydrationMultiplier: 1.0},
		{ID: "drink-tea", Name: "Tea", Icon: "🍵", Category: CategoryTea, HydrationMultiplier: 0.95, CaffeineMgPerServing: 30},
		{ID: "drink-coffee", Name: "Coffee", Icon: "☕", Category: CategoryCoffee, HydrationMultiplier: 0.9, CaffeineMgPerServing: 95},
		{ID: "drink-juice", Name: "Juice", Icon: "🧃", Category: CategoryJuice, HydrationMultiplier: 0.85, SugarGPerServing: 20},
		{ID: "drink-soda", Name: "Soda", Icon: "🥤", Category: CategorySoda, HydrationMultiplier: 0.7, CaffeineMgPerServing: 35, SugarGPerServing: 35},
		{ID: "drink-milk", Name: "Milk", Icon: "🥛", Category: CategoryMilk, HydrationMultiplier: 0.9},
		{ID: "drink-plant-milk", Name: "Plant Milk", Icon: "🌱", Category: CategoryPlantMilk, HydrationMultiplier: 0.9},
		{ID: "drink-beer", Name: "Beer", Icon: "🍺", Category: CategoryBeer, HydrationMultiplier: 0.6, AlcoholPercent: 5},
		{ID: "drink-wine", Name: "Wine", Icon: "🍷", Category: CategoryWine, HydrationMultiplier: 0.4, AlcoholPercent: 12},
		{ID: "drink-energy", Name: "Energy Drink", Icon: "⚡", Category: CategoryEnergy, HydrationMultiplier: 0.75, CaffeineMgPerServing: 80, SugarGPerServing: 27},
	}
}
