package command_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/application/command"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/memory"
)

func TestUpdateSettings(t *testing.T) {
	store := memory.NewSettingsStore()
	invalidator := &fakeInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := command.NewUpdateSettingsHandler(store, invalidator, logger)
	ctx := context.Background()

	updated, err := handler.Handle(ctx, command.UpdateSettingsCommand{
		DailyGoalMl: 2500,
		Timezone:    "Europe/Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, 2500, updated.DailyGoalMl)
	assert.Equal(t, "Europe/Berlin", updated.Timezone)
	assert.Equal(t, "07:00", updated.WakeUpTime, "untouched fields keep their value")
	assert.Len(t, invalidator.days, 1, "goal changes flush the cached day")

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateSettings_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := command.NewUpdateSettingsHandler(memory.NewSettingsStore(), nil, logger)
	ctx := context.Background()

	_, err := handler.Handle(ctx, command.UpdateSettingsCommand{DailyGoalMl: -100})
	assert.ErrorIs(t, err, shared.ErrInvalidGoal)

	_, err = handler.Handle(ctx, command.UpdateSettingsCommand{Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpsertDrink(t *testing.T) {
	catalog := memory.NewDrinkCatalog()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := command.NewUpsertDrinkHandler(catalog, logger)
	ctx := context.Background()

	drink, err := handler.Handle(ctx, command.UpsertDrinkCommand{
		Name:                 "Yerba Mate",
		Icon:                 "🧉",
		Category:             "tea",
		HydrationMultiplier:  0.9,
		CaffeineMgPerServing: 85,
	})
	require.NoError(t, err)
	assert.True(t, drink.IsCustom)
	assert.Equal(t, intake.CategoryTea, drink.Category)

	stored, err := catalog.Get(ctx, drink.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yerba Mate", stored.Name)

	// Updating the same id keeps it a single entry.
	updated, err := handler.Handle(ctx, command.UpsertDrinkCommand{
		DrinkID:             drink.ID,
		Name:                "Yerba Mate",
		Category:            "tea",
		HydrationMultiplier: 0.95,
	})
	require.NoError(t, err)
	assert.Equal(t, drink.ID, updated.ID)
}

func TestUpsertDrink_BuiltInsAreImmutable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := command.NewUpsertDrinkHandler(memory.NewDrinkCatalog(), logger)

	_, err := handler.Handle(context.Background(), command.UpsertDrinkCommand{
		DrinkID:             "drink-water",
		Name:                "Sparkling Water",
		Category:            "water",
		HydrationMultiplier: 1.0,
	})
	assert.ErrorIs(t, err, shared.ErrDrinkNotEditable)
}

func TestUpsertDrink_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := command.NewUpsertDrinkHandler(memory.NewDrinkCatalog(), logger)
	ctx := context.Background()

	_, err := handler.Handle(ctx, command.UpsertDrinkCommand{Name: "  ", Category: "tea"})
	assert.ErrorIs(t, err, shared.ErrInvalidDrink)

	_, err = handler.Handle(ctx, command.UpsertDrinkCommand{Name: "Moonshine", AlcoholPercent: 150})
	assert.ErrorIs(t, err, shared.ErrInvalidDrink)
}
