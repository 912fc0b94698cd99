package progress

import (
	"sync"
	"time"
)

// Stage identifies a phase of briefing generation.
type Stage string

const (
	StageFetching    Stage = "fetching"
	StageAggregating Stage = "aggregating"
	StageSummarizing Stage = "summarizing"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Event is one progress update pushed to a subscribed session.
type Event struct {
	Stage  Stage     `json:"stage"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Broadcaster fans progress events out to per-session subscribers. It is an
// owned, constructor-injected registry rather than a process-wide map so the
// service and its transport stay independently testable.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[string]chan Event
	buffer int
}

// NewBroadcaster constructs an empty registry.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[string]chan Event),
		buffer: 16,
	}
}

// Register creates a subscription for a session and returns its event
// channel. Registering the same session again replaces and closes the
// previous channel.
func (b *Broadcaster) Register(sessionID string) <-chan Event {
	if sessionID == "" {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.subs[sessionID]; ok {
		close(prev)
	}
	ch := make(chan Event, b.buffer)
	b.subs[sessionID] = ch
	return ch
}

// Publish delivers an event to the session's subscriber. Events for unknown
// sessions are dropped, as are events for subscribers that have fallen
// behind their buffer.
func (b *Broadcaster) Publish(sessionID string, event Event) {
	if sessionID == "" {
		return
	}

	// The send stays under the lock so a concurrent Close cannot close the
	// channel mid-send. The send itself never blocks.
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.subs[sessionID]
	if !ok {
		return
	}

	select {
	case ch <- event:
	default:
	}
}

// Close removes a session's subscription and closes its channel.
func (b *Broadcaster) Close(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[sessionID]; ok {
		close(ch)
		delete(b.subs, sessionID)
	}
}
