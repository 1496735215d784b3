package event

import (
	"sync"

	"github.com/freshline/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Handler consumes a single domain event. Handlers run synchronously on
// the publishing goroutine, so they must be fast and must not block.
type Handler func(event shared.DomainEvent)

// InMemoryPublisher dispatches domain events to in-process subscribers
// and writes an audit line for every event. Events are fire-and-forget:
// a failing handler never rolls back the write that produced the event.
type InMemoryPublisher struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewInMemoryPublisher creates a publisher with no subscribers.
func NewInMemoryPublisher(logger *zap.Logger) *InMemoryPublisher {
	return &InMemoryPublisher{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for an event type.
func (p *InMemoryPublisher) Subscribe(eventType string, h Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], h)
}

// Publish logs each event and hands it to the subscribed handlers.
func (p *InMemoryPublisher) Publish(events ...shared.DomainEvent) {
	for _, e := range events {
		p.logger.Info("domain event",
			zap.String("event_type", e.EventType()),
			zap.String("event_id", e.EventID().String()),
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()),
		)

		p.mu.RLock()
		handlers := p.handlers[e.EventType()]
		p.mu.RUnlock()

		for _, h := range handlers {
			p.dispatch(h, e)
		}
	}
}

func (p *InMemoryPublisher) dispatch(h Handler, e shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("event handler panicked",
				zap.String("event_type", e.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	h(e)
}

var _ shared.EventPublisher = (*InMemoryPublisher)(nil)
