package query

import (
	"context"
	"time"

	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// AchievementView joins a catalog definition with its stored progress.
type AchievementView struct {
	Type        string
	Name        string
	Description string
	Progress    int
	ProgressMax int
	XPReward    int
	Character   string
	IsUnlocked  bool
	UnlockedAt  *time.Time
}

// ListAchievementsHandler serves the achievement overview.
type ListAchievementsHandler struct {
	store achievement.Store
}

// NewListAchievementsHandler creates the handler.
func NewListAchievementsHandler(store achievement.Store) *ListAchievementsHandler {
	return &ListAchievementsHandler{store: store}
}

// Handle returns one view per catalog entry, catalog order. Entries never
// evaluated yet show zero progress.
func (h *ListAchievementsHandler) Handle(ctx context.Context) ([]AchievementView, error) {
	stored, err := h.store.List(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "ListAchievements", shared.ErrPersistence, "list achievements", err)
	}
	byType := make(map[string]*achievement.Achievement, len(stored))
	for _, a := range stored {
		byType[a.Type] = a
	}

	defs := achievement.Catalog()
	views := make([]AchievementView, 0, len(defs))
	for _, def := range defs {
		view := AchievementView{
			Type:        def.Type,
			Name:        def.Name,
			Description: def.Description,
			ProgressMax: def.Target,
			XPReward:    def.XPReward,
			Character:   def.Character,
		}
		if a, ok := byType[def.Type]; ok {
			view.Progress = a.Progress
			view.IsUnlocked = a.IsUnlocked
			view.UnlockedAt = a.UnlockedAt
		}
		views = append(views, view)
	}
	return views, nil
}
