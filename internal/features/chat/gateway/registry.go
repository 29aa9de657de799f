package chat_gateway

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps task ids to the live sessions currently joined to them. It is
// the only shared mutable state of the gateway; every mutation and iteration
// goes through the RWMutex.
type Registry struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[uuid.UUID]map[uuid.UUID]*Session),
	}
}

// Join adds the session to the task's room. Joining twice is a no-op.
func (r *Registry) Join(taskID uuid.UUID, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[taskID]
	if !ok {
		room = make(map[uuid.UUID]*Session)
		r.rooms[taskID] = room
	}

	room[session.id] = session
}

// Leave removes the session from every room it joined and drops rooms that
// become empty. Called on every disconnect path.
func (r *Registry) Leave(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for taskID, room := range r.rooms {
		if _, ok := room[session.id]; !ok {
			continue
		}

		delete(room, session.id)
		if len(room) == 0 {
			delete(r.rooms, taskID)
		}
	}
}

// Broadcast delivers a frame to every session in the task's room. Delivery is
// best effort: a session with a full send buffer is skipped so one slow
// consumer never stalls the rest of the room. Returns how many sessions the
// frame was handed to.
func (r *Registry) Broadcast(taskID uuid.UUID, frame []byte) int {
	r.mu.RLock()
	room := r.rooms[taskID]
	sessions := make([]*Session, 0, len(room))
	for _, session := range room {
		sessions = append(sessions, session)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, session := range sessions {
		if session.enqueue(frame) {
			delivered++
		}
	}

	return delivered
}

// RoomSize reports how many sessions are joined to the task's room.
func (r *Registry) RoomSize(taskID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[taskID])
}
