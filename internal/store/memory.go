// internal/store/memory.go
//
// In-memory session store.
// Rounds are never persisted: a session lives in this map until it has been
// idle longer than the TTL or the process exits.
//
// Characteristics:
//   - Stores *game.Session keyed by session ID.
//   - One mutex guards the map and serializes Update callbacks, so a session
//     is only ever touched by one handler at a time.
//   - Idle sessions are evicted lazily on Get/Update/Save.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/anagram-manager/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the session persistence interface.
type Store interface {
	// Save inserts or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get returns a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Update runs fn on the session with exclusive access.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Len reports the number of live sessions.
	Len() int
}

// memory is a map-based Store.
type memory struct {
	mu       sync.Mutex
	sessions map[string]*game.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs an in-memory Store. ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{
		sessions: make(map[string]*game.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	s.UpdatedAt = m.now()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if err := fn(s); err != nil {
		return err
	}
	s.UpdatedAt = m.now()
	return nil
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	return len(m.sessions)
}

// evictLocked drops sessions idle for longer than the TTL.
func (m *memory) evictLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
