package events

import (
	"sync"
	"time"
)

// Severity tags a log event for the operator UI.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEvent is one line of the operator-facing log stream.
type LogEvent struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Time     time.Time `json:"ts"`
}

// Bus fans log events out to subscribers. Publish never blocks: a slow
// subscriber loses events rather than stalling the trading loop.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan LogEvent]struct{}
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan LogEvent]struct{})}
}

// Subscribe registers a new subscriber channel with the given buffer size.
func (b *Bus) Subscribe(buffer int) chan LogEvent {
	ch := make(chan LogEvent, buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (b *Bus) Unsubscribe(ch chan LogEvent) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers an event to all current subscribers without blocking.
func (b *Bus) Publish(severity Severity, message string) {
	ev := LogEvent{Message: message, Severity: severity, Time: time.Now()}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
