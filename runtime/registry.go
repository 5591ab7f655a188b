// Package runtime handles command dispatch, event propagation and worker
// supervision. It orchestrates the system without containing domain rules.
package runtime

import (
	"sync"
	"taskroom/contract"

	"github.com/google/uuid"
)

// Registry is the directory of active connections. There is a single
// implicit room, so membership is just the session map itself.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]contract.EventSink)}
}

// Subscribe registers a session's active connection.
func (r *Registry) Subscribe(sessionID uuid.UUID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sink
}

// Unsubscribe removes a disconnected session. Its user and tasks remain:
// the protocol has no timeout semantics, a task with a disconnected
// assignee stays forever.
func (r *Registry) Unsubscribe(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Sessions returns a copy of the session map so fan-out can iterate
// without holding the lock during delivery.
func (r *Registry) Sessions() map[uuid.UUID]contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]contract.EventSink, len(r.sessions))
	for id, sink := range r.sessions {
		out[id] = sink
	}
	return out
}
