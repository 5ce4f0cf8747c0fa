package realtime

import (
	"log/slog"
	"sync"

	"github.com/wassalha/wassalha/internal/domain/model"
)

// Namespace partitions subscriptions by concern so a client tracking a
// delivery process does not receive chat traffic and vice versa.
type Namespace string

const (
	NamespaceProcessTrack  Namespace = "processTrack"
	NamespaceNotifications Namespace = "notifications"
	NamespaceChat          Namespace = "chat"
)

// LobbyRoom is the well-known processTrack room that carries marketplace-wide
// events, such as new requests entering the offerable pool. Entity rooms use
// positive identifiers, so zero is free for the lobby.
const LobbyRoom int64 = 0

// Event is a single message pushed to subscribers of a room.
type Event struct {
	Kind    model.EventKind `json:"kind"`
	Payload []byte          `json:"payload,omitempty"`
}

// Subscriber receives events for the rooms it has joined. Delivery is
// non-blocking: a subscriber that cannot keep up loses events rather than
// stalling the hub.
type Subscriber struct {
	ch chan Event
}

// Events exposes the subscriber's receive channel.
func (s *Subscriber) Events() <-chan Event { return s.ch }

type roomKey struct {
	ns Namespace
	id int64
}

// Hub routes events to subscribers grouped into rooms. Rooms are keyed by
// namespace and an entity identifier (process id for process tracking, user
// id for notifications and chat). Join is idempotent per subscriber: the
// room keeps a reference count so repeated joins never cause duplicate
// delivery, and a subscriber stays in the room until Leave has been called
// as many times as Join.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[roomKey]map[*Subscriber]int
	buffer int
	logger *slog.Logger
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		rooms:  make(map[roomKey]map[*Subscriber]int),
		buffer: buffer,
		logger: logger,
	}
}

// NewSubscriber allocates a subscriber bound to this hub's buffer size.
func (h *Hub) NewSubscriber() *Subscriber {
	return &Subscriber{ch: make(chan Event, h.buffer)}
}

// Join adds sub to the room for (ns, id). Joining a room the subscriber is
// already in only bumps the reference count; the subscriber still receives
// each event exactly once.
func (h *Hub) Join(ns Namespace, id int64, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := roomKey{ns: ns, id: id}
	room, ok := h.rooms[key]
	if !ok {
		room = make(map[*Subscriber]int)
		h.rooms[key] = room
	}
	room[sub]++
}

// Leave decrements sub's reference count in the room and removes it once the
// count reaches zero. Leaving a room the subscriber never joined is a no-op.
func (h *Hub) Leave(ns Namespace, id int64, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := roomKey{ns: ns, id: id}
	room, ok := h.rooms[key]
	if !ok {
		return
	}
	if room[sub] <= 1 {
		delete(room, sub)
	} else {
		room[sub]--
	}
	if len(room) == 0 {
		delete(h.rooms, key)
	}
}

// LeaveAll removes sub from every room regardless of reference counts. Used
// when the underlying connection closes.
func (h *Hub) LeaveAll(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, room := range h.rooms {
		if _, ok := room[sub]; ok {
			delete(room, sub)
			if len(room) == 0 {
				delete(h.rooms, key)
			}
		}
	}
}

// Broadcast delivers ev to every subscriber of the room exactly once. Full
// subscriber buffers are skipped.
func (h *Hub) Broadcast(ns Namespace, id int64, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[roomKey{ns: ns, id: id}]
	if !ok {
		return
	}
	for sub := range room {
		select {
		case sub.ch <- ev:
		default:
			if h.logger != nil {
				h.logger.Warn("realtime subscriber buffer full, dropping event",
					slog.String("namespace", string(ns)),
					slog.Int64("room", id),
					slog.String("kind", string(ev.Kind)))
			}
		}
	}
}

// RoomSize reports how many distinct subscribers a room currently holds.
func (h *Hub) RoomSize(ns Namespace, id int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomKey{ns: ns, id: id}])
}
