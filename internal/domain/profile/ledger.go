package profile

import (
	"context"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

// XPResult reports the outcome of applying an XP reward.
type XPResult struct {
	XPGained   int
	NewTotalXP int
	NewLevel   int
	DidLevelUp bool
}

// Ledger applies progression mutations to the profile. All writes funnel
// through here so XP totals stay additive and character/drink sets stay
// idempotent.
type Ledger struct {
	store Store
	sink  shared.RewardSink
}

// NewLedger creates a progression ledger.
func NewLedger(store Store, sink shared.RewardSink) *Ledger {
	return &Ledger{store: store, sink: sink}
}

// AddXP applies a positive XP amount. A level-up is detected by comparing
// the derived level before and after; crossing several thresholds at once
// still reports a single level-up with the final level.
func (l *Ledger) AddXP(ctx context.Context, amount int) (XPResult, error) {
	if amount <= 0 {
		return XPResult{}, shared.ErrNonPositiveXP
	}
	p, err := l.store.Get(ctx)
	if err != nil {
		return XPResult{}, shared.WrapError("profile", "AddXP", shared.ErrPersistence, "load profile", err)
	}

	before := p.Level()
	p.TotalXP = p.TotalXP.Add(amount)
	after := p.Level()

	if err := l.store.Update(ctx, p); err != nil {
		return XPResult{}, shared.WrapError("profile", "AddXP", shared.ErrPersistence, "persist profile", err)
	}

	result := XPResult{
		XPGained:   amount,
		NewTotalXP: p.TotalXP.Int(),
		NewLevel:   after.Int(),
		DidLevelUp: after > before,
	}
	if result.DidLevelUp {
		_ = l.sink.Publish(shared.NewLevelUpEvent(p.ID, before.Int(), after.Int(), p.TotalXP.Int()))
	}
	return result, nil
}

// UnlockCharacter adds a character to the profile's set. Re-unlocking is a
// no-op and emits nothing.
func (l *Ledger) UnlockCharacter(ctx context.Context, characterID string) error {
	if characterID == "" {
		return nil
	}
	p, err := l.store.Get(ctx)
	if err != nil {
		return shared.WrapError("profile", "UnlockCharacter", shared.ErrPersistence, "load profile", err)
	}
	if !p.addCharacter(characterID) {
		return nil
	}
	if err := l.store.Update(ctx, p); err != nil {
		return shared.WrapError("profile", "UnlockCharacter", shared.ErrPersistence, "persist profile", err)
	}
	_ = l.sink.Publish(shared.NewCharacterUnlockedEvent(characterID))
	return nil
}

// RecordDrink counts a logged drink and adds its name to the unique-drink
// set. The counter always increments; the set add is idempotent.
func (l *Ledger) RecordDrink(ctx context.Context, drinkName string) error {
	p, err := l.store.Get(ctx)
	if err != nil {
		return shared.WrapError("profile", "RecordDrink", shared.ErrPersistence, "load profile", err)
	}
	p.TotalDrinksLogged++
	if drinkName != "" && !p.hasDrink(drinkName) {
		p.UniqueDrinks = append(p.UniqueDrinks, drinkName)
	}
	if err := l.store.Update(ctx, p); err != nil {
		return shared.WrapError("profile", "RecordDrink", shared.ErrPersistence, "persist profile", err)
	}
	return nil
}

// IncChallengesCompleted bumps the completed-challenge counter.
func (l *Ledger) IncChallengesCompleted(ctx context.Context) error {
	p, err := l.store.Get(ctx)
	if err != nil {
		return shared.WrapError("profile", "IncChallengesCompleted", shared.ErrPersistence, "load profile", err)
	}
	p.ChallengesCompleted++
	if err := l.store.Update(ctx, p); err != nil {
		return shared.WrapError("profile", "IncChallengesCompleted", shared.ErrPersistence, "persist profile", err)
	}
	return nil
}

// IncAchievementsUnlocked bumps the unlocked-achievement counter.
func (l *Ledger) IncAchievementsUnlocked(ctx context.Context) error {
	p, err := l.store.Get(ctx)
	if err != nil {
		return shared.WrapError("profile", "IncAchievementsUnlocked", shared.ErrPersistence, "load profile", err)
	}
	p.AchievementsUnlocked++
	if err := l.store.Update(ctx, p); err != nil {
		return shared.WrapError("profile", "IncAchievementsUnlocked", shared.ErrPersistence, "persist profile", err)
	}
	return nil
}

// Profile returns the current profile state.
func (l *Ledger) Profile(ctx context.Context) (*UserProfile, error) {
	p, err := l.store.Get(ctx)
	if err != nil {
		return nil, shared.WrapError("profile", "Profile", shared.ErrPersistence, "load profile", err)
	}
	return p, nil
}
