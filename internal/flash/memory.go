package flash

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps flash queues in process memory.
//
// It is the fallback when Redis is not configured and the store used in
// tests. Sessions expire ttl after their last write.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

type memorySession struct {
	queues  map[string][]string
	expires time.Time
}

// NewMemoryStore returns an empty store. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

// Add appends value to the session's queue for key.
func (m *MemoryStore) Add(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()

	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &memorySession{queues: make(map[string][]string)}
		m.sessions[sessionID] = sess
	}
	sess.queues[key] = append(sess.queues[key], value)
	if m.ttl > 0 {
		sess.expires = m.now().Add(m.ttl)
	}

	return nil
}

// Consume returns and clears the session's queue for key.
func (m *MemoryStore) Consume(_ context.Context, sessionID, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	values := sess.queues[key]
	delete(sess.queues, key)
	if len(sess.queues) == 0 {
		delete(m.sessions, sessionID)
	}

	return values, nil
}

// Len reports how many sessions hold messages.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep drops expired sessions. Callers hold mu.
func (m *MemoryStore) sweep() {
	if m.ttl == 0 {
		return
	}
	now := m.now()
	for id, sess := range m.sessions {
		if now.After(sess.expires) {
			delete(m.sessions, id)
		}
	}
}
