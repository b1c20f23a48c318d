// Package shared contains common domain types, errors, and events that are
// used across all domain packages.
package shared

import (
	"context"
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents a reward-relevant fact the
// engine has established; presentation layers subscribe to these.
const (
	EventIntakeLogged       EventType = "intake.logged"
	EventIntakeDeleted      EventType = "intake.deleted"
	EventChallengeStarted   EventType = "challenge.started"
	EventChallengeViolated  EventType = "challenge.violated"
	EventChallengeCompleted EventType = "challenge.completed"
	EventChallengeAbandoned EventType = "challenge.abandoned"
	EventAchievementUnlocked EventType = "achievement.unlocked"
	EventCharacterUnlocked   EventType = "profile.character_unlocked"
	EventLevelUp             EventType = "profile.level_up"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Intake Events
// ═══════════════════════════════════════════════════════════════════════════

// IntakeLoggedEvent is emitted after an intake entry is durably recorded.
type IntakeLoggedEvent struct {
	BaseEvent
	IntakeID  string    `json:"intake_id"`
	DrinkID   string    `json:"drink_id"`
	DrinkName string    `json:"drink_name"`
	AmountMl  int       `json:"amount_ml"`
	LoggedAt  time.Time `json:"logged_at"`
}

// Payload implements Event interface.
func (e IntakeLoggedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"intake_id":  e.IntakeID,
		"drink_id":   e.DrinkID,
		"drink_name": e.DrinkName,
		"amount_ml":  e.AmountMl,
		"logged_at":  e.LoggedAt.Format(time.RFC3339),
	}
}

// NewIntakeLoggedEvent creates a new IntakeLoggedEvent.
func NewIntakeLoggedEvent(intakeID, drinkID, drinkName string, amountMl int, loggedAt time.Time) IntakeLoggedEvent {
	return IntakeLoggedEvent{
		BaseEvent: NewBaseEvent(EventIntakeLogged, intakeID),
		IntakeID:  intakeID,
		DrinkID:   drinkID,
		DrinkName: drinkName,
		AmountMl:  amountMl,
		LoggedAt:  loggedAt,
	}
}

// IntakeDeletedEvent is emitted when an intake entry is removed.
type IntakeDeletedEvent struct {
	BaseEvent
	IntakeID string `json:"intake_id"`
}

// Payload implements Event interface.
func (e IntakeDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"intake_id": e.IntakeID}
}

// NewIntakeDeletedEvent creates a new IntakeDeletedEvent.
func NewIntakeDeletedEvent(intakeID string) IntakeDeletedEvent {
	return IntakeDeletedEvent{
		BaseEvent: NewBaseEvent(EventIntakeDeleted, intakeID),
		IntakeID:  intakeID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Challenge Events
// ═══════════════════════════════════════════════════════════════════════════

// ChallengeStartedEvent is emitted when a challenge becomes active.
type ChallengeStartedEvent struct {
	BaseEvent
	ChallengeID   string    `json:"challenge_id"`
	ChallengeType string    `json:"challenge_type"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

// Payload implements Event interface.
func (e ChallengeStartedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"challenge_id":   e.ChallengeID,
		"challenge_type": e.ChallengeType,
		"start_date":     e.StartDate.Format(time.RFC3339),
		"end_date":       e.EndDate.Format(time.RFC3339),
	}
}

// NewChallengeStartedEvent creates a new ChallengeStartedEvent.
func NewChallengeStartedEvent(challengeID, challengeType string, startDate, endDate time.Time) ChallengeStartedEvent {
	return ChallengeStartedEvent{
		BaseEvent:     NewBaseEvent(EventChallengeStarted, challengeID),
		ChallengeID:   challengeID,
		ChallengeType: challengeType,
		StartDate:     startDate,
		EndDate:       endDate,
	}
}

// ChallengeViolatedEvent is emitted exactly once, when a challenge first
// transitions to the violated state.
type ChallengeViolatedEvent struct {
	BaseEvent
	ChallengeID   string    `json:"challenge_id"`
	ChallengeType string    `json:"challenge_type"`
	DrinkName     string    `json:"drink_name"`
	DrinkIcon     string    `json:"drink_icon"`
	ViolatedAt    time.Time `json:"violated_at"`
}

// Payload implements Event interface.
func (e ChallengeViolatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"challenge_id":   e.ChallengeID,
		"challenge_type": e.ChallengeType,
		"drink_name":     e.DrinkName,
		"drink_icon":     e.DrinkIcon,
		"violated_at":    e.ViolatedAt.Format(time.RFC3339),
	}
}

// NewChallengeViolatedEvent creates a new ChallengeViolatedEvent.
func NewChallengeViolatedEvent(challengeID, challengeType, drinkName, drinkIcon string, violatedAt time.Time) ChallengeViolatedEvent {
	return ChallengeViolatedEvent{
		BaseEvent:     NewBaseEvent(EventChallengeViolated, challengeID),
		ChallengeID:   challengeID,
		ChallengeType: challengeType,
		DrinkName:     drinkName,
		DrinkIcon:     drinkIcon,
		ViolatedAt:    violatedAt,
	}
}

// ChallengeCompletedEvent is emitted when a challenge is successfully completed.
type ChallengeCompletedEvent struct {
	BaseEvent
	ChallengeID   string `json:"challenge_id"`
	ChallengeType string `json:"challenge_type"`
	DurationDays  int    `json:"duration_days"`
	XPReward      int    `json:"xp_reward"`
}

// Payload implements Event interface.
func (e ChallengeCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"challenge_id":   e.ChallengeID,
		"challenge_type": e.ChallengeType,
		"duration_days":  e.DurationDays,
		"xp_reward":      e.XPReward,
	}
}

// NewChallengeCompletedEvent creates a new ChallengeCompletedEvent.
func NewChallengeCompletedEvent(challengeID, challengeType string, durationDays, xpReward int) ChallengeCompletedEvent {
	return ChallengeCompletedEvent{
		BaseEvent:     NewBaseEvent(EventChallengeCompleted, challengeID),
		ChallengeID:   challengeID,
		ChallengeType: challengeType,
		DurationDays:  durationDays,
		XPReward:      xpReward,
	}
}

// ChallengeAbandonedEvent is emitted when a challenge is given up early.
type ChallengeAbandonedEvent struct {
	BaseEvent
	ChallengeID   string `json:"challenge_id"`
	ChallengeType string `json:"challenge_type"`
}

// Payload implements Event interface.
func (e ChallengeAbandonedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"challenge_id":   e.ChallengeID,
		"challenge_type": e.ChallengeType,
	}
}

// NewChallengeAbandonedEvent creates a new ChallengeAbandonedEvent.
func NewChallengeAbandonedEvent(challengeID, challengeType string) ChallengeAbandonedEvent {
	return ChallengeAbandonedEvent{
		BaseEvent:     NewBaseEvent(EventChallengeAbandoned, challengeID),
		ChallengeID:   challengeID,
		ChallengeType: challengeType,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement & Progression Events
// ═══════════════════════════════════════════════════════════════════════════

// AchievementUnlockedEvent is emitted exactly once per achievement, when its
// progress first crosses the unlock threshold.
type AchievementUnlockedEvent struct {
	BaseEvent
	AchievementType string `json:"achievement_type"`
	Name            string `json:"name"`
	XPReward        int    `json:"xp_reward"`
	Character       string `json:"character,omitempty"`
}

// Payload implements Event interface.
func (e AchievementUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"achievement_type": e.AchievementType,
		"name":             e.Name,
		"xp_reward":        e.XPReward,
		"character":        e.Character,
	}
}

// NewAchievementUnlockedEvent creates a new AchievementUnlockedEvent.
func NewAchievementUnlockedEvent(achievementType, name string, xpReward int, character string) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent:       NewBaseEvent(EventAchievementUnlocked, achievementType),
		AchievementType: achievementType,
		Name:            name,
		XPReward:        xpReward,
		Character:       character,
	}
}

// CharacterUnlockedEvent is emitted when a collectible character joins the
// profile's unlocked set for the first time.
type CharacterUnlockedEvent struct {
	BaseEvent
	CharacterID string `json:"character_id"`
}

// Payload implements Event interface.
func (e CharacterUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"character_id": e.CharacterID}
}

// NewCharacterUnlockedEvent creates a new CharacterUnlockedEvent.
func NewCharacterUnlockedEvent(characterID string) CharacterUnlockedEvent {
	return CharacterUnlockedEvent{
		BaseEvent:   NewBaseEvent(EventCharacterUnlocked, characterID),
		CharacterID: characterID,
	}
}

// LevelUpEvent is emitted when applying XP raises the profile's level.
type LevelUpEvent struct {
	BaseEvent
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
	TotalXP  int `json:"total_xp"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
		"total_xp":  e.TotalXP,
	}
}

// NewLevelUpEvent creates a new LevelUpEvent.
func NewLevelUpEvent(profileID string, oldLevel, newLevel, totalXP int) LevelUpEvent {
	return LevelUpEvent{
		BaseEvent: NewBaseEvent(EventLevelUp, profileID),
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		TotalXP:   totalXP,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope & Bus Contracts
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID          string          `json:"id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
// The engine treats publication as fire-and-forget: a failed publish is
// logged by the implementation and never surfaces as an operation error.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// RewardSink is the one-way emission port for reward events. It is an alias
// of EventPublisher kept as its own name so engine constructors document
// which direction the dependency points.
type RewardSink = EventPublisher

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// UnitOfWork runs a function inside a single atomic persistence scope.
// Store implementations resolve the active scope from the context, so
// reads and writes made by fn land in the same transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
