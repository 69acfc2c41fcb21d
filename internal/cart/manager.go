package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns the per-user cart stores for the process. Carts are ephemeral
// session state: nothing is persisted and a restart empties every cart.
type Manager struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*Store
}

// NewManager returns an empty cart manager.
func NewManager() *Manager {
	return &Manager{stores: make(map[uuid.UUID]*Store)}
}

// Add merges an item into the user's cart.
func (m *Manager) Add(userID uuid.UUID, item Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeFor(userID).Add(item)
}

// Remove drops the matching line from the user's cart.
func (m *Manager) Remove(userID uuid.UUID, key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[userID]; ok {
		store.Remove(key)
	}
}

// RemoveAll drops every matching line from the user's cart.
func (m *Manager) RemoveAll(userID uuid.UUID, keys []Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[userID]
	if !ok {
		return
	}
	for _, key := range keys {
		store.Remove(key)
	}
}

// UpdateQuantity sets the matching line's quantity, removing it when the
// quantity is zero or less.
func (m *Manager) UpdateQuantity(userID uuid.UUID, key Key, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeFor(userID).UpdateQuantity(key, quantity)
}

// Clear empties the user's cart.
func (m *Manager) Clear(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[userID]; ok {
		store.Clear()
	}
	delete(m.stores, userID)
}

// Snapshot returns the user's cart lines and totals.
func (m *Manager) Snapshot(userID uuid.UUID) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.stores[userID]
	if !ok {
		return Snapshot{Lines: []Item{}}
	}
	return Snapshot{
		Lines:       store.Lines(),
		TotalItems:  store.TotalItems(),
		TotalAmount: store.TotalAmount(),
		TotalCost:   store.TotalCost(),
		TotalProfit: store.TotalProfit(),
	}
}

// Snapshot is a point-in-time copy of a user's cart.
type Snapshot struct {
	Lines       []Item
	TotalItems  int
	TotalAmount float64
	TotalCost   float64
	TotalProfit float64
}

// SessionRevoked clears the user's cart when their session ends.
func (m *Manager) SessionRevoked(userID uuid.UUID) {
	m.Clear(userID)
}

func (m *Manager) storeFor(userID uuid.UUID) *Store {
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore()
		m.stores[userID] = store
	}
	return store
}
