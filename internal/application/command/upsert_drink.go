package command

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPSERT CUSTOM DRINK COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpsertDrinkCommand creates or updates a user-defined drink. DrinkID is
// empty for creation.
type UpsertDrinkCommand struct {
	DrinkID              string
	Name                 string
	Icon                 string
	Category             string
	HydrationMultiplier  float64
	CaffeineMgPerServing float64
	AlcoholPercent       float64
	SugarGPerServing     float64
}

// UpsertDrinkHandler handles the UpsertDrinkCommand.
type UpsertDrinkHandler struct {
	catalog intake.DrinkCatalog
	logger  *slog.Logger
}

// NewUpsertDrinkHandler creates a new UpsertDrinkHandler.
func NewUpsertDrinkHandler(catalog intake.DrinkCatalog, logger *slog.Logger) *UpsertDrinkHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpsertDrinkHandler{catalog: catalog, logger: logger}
}

// Handle executes the upsert drink command.
func (h *UpsertDrinkHandler) Handle(ctx context.Context, cmd UpsertDrinkCommand) (*intake.Drink, error) {
	drink, err := intake.NewCustomDrink(
		cmd.Name,
		cmd.Icon,
		intake.ParseCategory(cmd.Category),
		cmd.HydrationMultiplier,
		cmd.CaffeineMgPerServing,
		cmd.AlcoholPercent,
		cmd.SugarGPerServing,
	)
	if err != nil {
		return nil, err
	}
	if cmd.DrinkID != "" {
		drink.ID = cmd.DrinkID
	}

	if err := h.catalog.UpsertCustom(ctx, drink); err != nil {
		if shared.IsConflict(err) || shared.IsValidation(err) {
			return nil, err
		}
		return nil, shared.WrapError("command", "UpsertDrink", shared.ErrPersistence, "persist drink", err)
	}
	h.logger.Debug("custom drink saved", slog.String("drink_id", drink.ID), slog.String("name", drink.Name))
	return drink, nil
}
