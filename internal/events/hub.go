// Package events is the in-process fan-out behind the WebSocket push
// endpoint. Delivery is best-effort: the polling endpoints remain the
// source of truth, so a slow consumer is dropped rather than allowed to
// stall a publisher.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TypeConnectionRequest  = "connection.request"
	TypeConnectionAccepted = "connection.accepted"
	TypeMessageNew         = "message.new"
	TypeCallState          = "call.state"
)

type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// subscriber buffer size; a full buffer means the consumer is not
// keeping up and the event is dropped for that subscriber.
const bufferSize = 32

type Subscription struct {
	C      <-chan Event
	ch     chan Event
	cancel func()
	once   sync.Once
}

// Close detaches the subscription from the hub. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[*Subscription]struct{})}
}

// Subscribe registers a listener for events addressed to identity.
func (h *Hub) Subscribe(identity uuid.UUID) *Subscription {
	ch := make(chan Event, bufferSize)
	sub := &Subscription{C: ch, ch: ch}
	sub.cancel = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[identity]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, identity)
			}
		}
		close(ch)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[identity] == nil {
		h.subs[identity] = make(map[*Subscription]struct{})
	}
	h.subs[identity][sub] = struct{}{}
	return sub
}

// Publish delivers an event to every subscriber of identity without
// blocking; full buffers lose the event.
func (h *Hub) Publish(identity uuid.UUID, eventType string, data any) {
	event := Event{Type: eventType, Data: data, At: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[identity] {
		select {
		case sub.ch <- event:
		default:
		}
	}
}
