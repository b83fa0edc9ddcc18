package cart

import "sync"

// Manager hands out the cart owned by each user session. The same *Cart is
// returned for a user until the session is dropped, so a session's requests
// all mutate one explicitly owned store rather than ambient global state.
type Manager struct {
	mu     sync.Mutex
	events Events
	carts  map[string]*Cart
}

// NewManager returns a Manager whose carts report to the given events sink.
func NewManager(events Events) *Manager {
	return &Manager{
		events: events,
		carts:  make(map[string]*Cart),
	}
}

// Get returns the cart for the given user, creating an empty one on first
// use.
func (m *Manager) Get(userID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		c = New(m.events)
		m.carts[userID] = c
	}
	return c
}

// Drop discards the cart for the given user, ending its lifetime.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	delete(m.carts, userID)
	m.mu.Unlock()
}
