package memory

import (
	"context"
	"sync"
)

// DefaultMaxTurns bounds the per-session ring when no limit is configured.
const DefaultMaxTurns = 5

// Store persists session turn metadata.  Implementations must be safe for
// concurrent use.
type Store interface {
	// Append adds a turn to the session's ring, evicting the oldest turn
	// when the ring is full.  Empty turns are silently dropped.
	Append(ctx context.Context, sessionID string, turn Turn) error
	// Turns returns the session's turns oldest first.  A missing session
	// yields an empty slice, not an error.
	Turns(ctx context.Context, sessionID string) ([]Turn, error)
	// Clear removes the session entirely.
	Clear(ctx context.Context, sessionID string) error
}

// LocalStore is the in-process Store: a mutex-guarded map of bounded rings.
// Suitable for single-instance deployments and tests.
type LocalStore struct {
	mu       sync.Mutex
	maxTurns int
	sessions map[string][]Turn
}

// NewLocalStore creates a LocalStore keeping at most maxTurns per session.
func NewLocalStore(maxTurns int) *LocalStore {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}
	return &LocalStore{maxTurns: maxTurns, sessions: make(map[string][]Turn)}
}

func (s *LocalStore) Append(_ context.Context, sessionID string, turn Turn) error {
	if turn.isEmpty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ring := append(s.sessions[sessionID], turn)
	if len(ring) > s.maxTurns {
		ring = ring[len(ring)-s.maxTurns:]
	}
	s.sessions[sessionID] = ring
	return nil
}

func (s *LocalStore) Turns(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ring := s.sessions[sessionID]
	out := make([]Turn, len(ring))
	copy(out, ring)
	return out, nil
}

func (s *LocalStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
