// Package bus carries pipeline outcomes to presentation collaborators.
// Delivery is at-most-once and best-effort: a slow subscriber loses
// messages instead of blocking the pipeline, and nothing is retried.
package bus

import (
	"sync"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// Bus fans outcomes out to subscribers
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan *core.Outcome
	nextID int
	logger *zap.Logger
}

// New creates an event bus
func New(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]chan *core.Outcome),
		logger: logger,
	}
}

// Subscribe registers a subscriber with the given channel buffer and
// returns the channel plus an unsubscribe function. The channel is
// closed on unsubscribe.
func (b *Bus) Subscribe(buffer int) (<-chan *core.Outcome, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan *core.Outcome, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
		b.mu.Unlock()
	}
	return ch, unsubscribe
}

// Publish delivers an outcome to every subscriber that has buffer space.
// Full subscribers are skipped.
func (b *Bus) Publish(outcome *core.Outcome) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- outcome:
		default:
			b.logger.Debug("Dropping outcome for slow subscriber",
				zap.String("identity", outcome.Record.Identity))
		}
	}
}
