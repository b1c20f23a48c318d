package messaging

import (
	"context"
	"log/slog"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/pkg/circuitbreaker"
)

// BreakerSink wraps a reward publisher with a circuit breaker. Engines
// publish fire-and-forget; when delivery keeps failing the breaker opens
// and publishes are dropped on the floor instead of waiting on a dead
// collaborator. Dropped events are logged, never returned as errors.
type BreakerSink struct {
	inner   shared.EventPublisher
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewBreakerSink creates a breaker-guarded reward sink.
func NewBreakerSink(inner shared.EventPublisher, logger *slog.Logger) *BreakerSink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &BreakerSink{inner: inner, logger: logger}
	s.breaker = circuitbreaker.RewardSinkBreaker(func(name string, from, to circuitbreaker.State) {
		logger.Warn("reward sink breaker state change",
			slog.String("breaker", name),
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	})
	return s
}

// Publish implements shared.EventPublisher. It always returns nil; reward
// delivery failure never propagates into engine operations.
func (s *BreakerSink) Publish(event shared.Event) error {
	err := s.breaker.Execute(context.Background(), func(context.Context) error {
		return s.inner.Publish(event)
	})
	if err != nil {
		s.logger.Warn("reward event dropped",
			slog.String("event_type", string(event.EventType())),
			slog.String("error", err.Error()))
	}
	return nil
}
