package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is used when no Redis URL is configured. Sessions do not
// survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	counters map[string]memoryCounter
	now      func() time.Time
}

type memorySession struct {
	data    Data
	expires time.Time
}

type memoryCounter struct {
	n       int64
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		counters: make(map[string]memoryCounter),
		now:      time.Now,
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, data Data, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[hash(id)] = memorySession{data: data, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := hash(id)
	s, ok := m.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !m.now().Before(s.expires) {
		delete(m.sessions, key)
		return nil, ErrNotFound
	}
	data := s.data
	return &data, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, hash(id))
	return nil
}

func (m *MemoryStore) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := hash(key)
	now := m.now()
	c, ok := m.counters[k]
	if !ok || !now.Before(c.expires) {
		c = memoryCounter{expires: now.Add(window)}
	}
	c.n++
	m.counters[k] = c
	return c.n, nil
}

func (m *MemoryStore) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counters, hash(key))
	return nil
}
