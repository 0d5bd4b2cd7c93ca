// Package live fans out newly stored messages to connected viewers.
package live

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/risut/crm/internal/metrics"
)

const (
	// DefaultBufferSize is the default per-session queue length.
	DefaultBufferSize = 64

	// EventNewMessage is emitted after a message is stored for the first time.
	EventNewMessage = "new_message"
)

// Event is the frame written to viewers.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Sender writes one event to a viewer. Calls for one session are never concurrent.
type Sender interface {
	Send(event Event) error
}

type session struct {
	queue chan Event
}

// Hub is the registry of connected sessions. Each session has its own queue and
// writer goroutine, so a slow viewer loses events instead of delaying others.
// Delivery is at most once with no replay.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	buffer   int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewHub creates an empty hub. buffer <= 0 selects DefaultBufferSize.
func NewHub(log *slog.Logger, buffer int, m *metrics.Metrics) *Hub {
	if log == nil {
		log = slog.Default()
	}
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}
	return &Hub{
		sessions: map[string]*session{},
		buffer:   buffer,
		logger:   log.With(slog.String("component", "live_hub")),
		metrics:  m,
	}
}

// Register adds a session writing through send. cancel is the same as Unregister(id).
// A session whose Send fails is removed.
func (h *Hub) Register(send Sender) (string, func()) {
	id := uuid.NewString()
	s := &session{queue: make(chan Event, h.buffer)}

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()
	h.metrics.LiveSessionOpened()

	go func() {
		for ev := range s.queue {
			if err := send.Send(ev); err != nil {
				h.logger.Debug("live send failed, dropping session", slog.String("session_id", id), slog.Any("error", err))
				h.Unregister(id)
				// Drain so Broadcast never sees a full queue of a dead session.
				for range s.queue {
				}
				return
			}
		}
	}()

	var once sync.Once
	return id, func() { once.Do(func() { h.Unregister(id) }) }
}

// Unregister removes a session and stops its writer. Unknown IDs are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
		close(s.queue)
	}
	h.mu.Unlock()
	if ok {
		h.metrics.LiveSessionClosed()
	}
}

// Broadcast enqueues event for every session without blocking.
func (h *Hub) Broadcast(event Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.sessions {
		select {
		case s.queue <- event:
		default:
			h.metrics.LiveDropped()
			h.logger.Debug("live queue full, event dropped", slog.String("session_id", id), slog.String("event", event.Name))
		}
	}
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close unregisters every session.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Unregister(id)
	}
}
