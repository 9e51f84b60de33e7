package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the fallback when Redis is unreachable, and the fixture used
// in tests. Expiry is checked lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
}

type memorySession struct {
	turns     []Turn
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Sweep on write so sessions that are never read again don't pile up.
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.turns = append(sess.turns, turns...)
	sess.expiresAt = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []Turn{}, nil
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return []Turn{}, nil
	}

	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
