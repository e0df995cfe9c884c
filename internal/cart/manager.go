package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a session cart does not exist or has expired.
var ErrNotFound = errors.New("cart not found")

// session pairs a cart with its last-access time for TTL eviction.
type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Manager hands out per-session carts keyed by opaque ids and evicts carts
// that have been idle longer than the TTL. Carts are in-memory only; an
// evicted or restarted-away cart is simply gone.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager creates a Manager evicting carts idle for longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create allocates a fresh empty cart and returns its id.
func (m *Manager) Create() (string, *Cart) {
	id := uuid.New().String()
	c := New()

	m.mu.Lock()
	m.sessions[id] = &session{cart: c, lastSeen: m.now()}
	m.mu.Unlock()

	return id, c
}

// Get returns the cart for id and refreshes its idle timer. It returns
// ErrNotFound for unknown or expired ids.
func (m *Manager) Get(id string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.lastSeen = m.now()
	return s.cart, nil
}

// Delete drops the cart for id. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evictIdle removes sessions idle for longer than the TTL.
func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) >= m.ttl {
			delete(m.sessions, id)
		}
	}
}

// RunCleanup periodically evicts idle sessions until ctx is cancelled,
// then returns nil.
func (m *Manager) RunCleanup(ctx context.Context) error {
	interval := m.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}
