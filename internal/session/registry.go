package session

import (
	"sync"

	"github.com/google/uuid"
)

// Observer is notified when a user's session ends, whether by logout or
// revocation. Observers must not block.
type Observer interface {
	SessionRevoked(userID uuid.UUID)
}

// Registry fans session lifecycle notifications out to registered observers.
// Consumers subscribe explicitly and unsubscribe via the returned handle.
type Registry struct {
	mu        sync.RWMutex
	nextID    int
	observers map[int]Observer
}

// NewRegistry returns an empty observer registry.
func NewRegistry() *Registry {
	return &Registry{observers: make(map[int]Observer)}
}

// Subscribe registers an observer and returns an unsubscribe function.
func (r *Registry) Subscribe(obs Observer) func() {
	if obs == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.observers[id] = obs
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.observers, id)
		r.mu.Unlock()
	}
}

// NotifyRevoked tells every observer the user's session has ended.
func (r *Registry) NotifyRevoked(userID uuid.UUID) {
	r.mu.RLock()
	observers := make([]Observer, 0, len(r.observers))
	for _, obs := range r.observers {
		observers = append(observers, obs)
	}
	r.mu.RUnlock()

	for _, obs := range observers {
		obs.SessionRevoked(userID)
	}
}
