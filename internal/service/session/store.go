package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
)

// DefaultTTL is how long an idle session survives before sweep eviction.
const DefaultTTL = 30 * time.Minute

type entry struct {
	mu   sync.Mutex
	gone bool
	sess conversation.Session
}

// Store keeps per-conversation state in memory, keyed by an opaque session id.
// Mutation within one session is serialized by a per-entry lock, so a full
// read-mutate-write turn is observed atomically by concurrent callers.
// Distinct sessions only contend on the map itself.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
}

// NewStore bootstraps the in-memory session store.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, entries: make(map[string]*entry)}
}

func (s *Store) entryFor(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{sess: conversation.Session{ID: id, LastActivity: time.Now().UTC()}}
		s.entries[id] = e
	}
	return e
}

// Turn runs fn with exclusive access to the session, creating it with defaults
// if absent. The session as left by fn is returned by value. An entry evicted
// between lookup and lock is retried against a fresh one, so callers never
// mutate a session that is no longer in the store.
func (s *Store) Turn(id string, fn func(*conversation.Session)) conversation.Session {
	for {
		e := s.entryFor(id)
		e.mu.Lock()
		if e.gone {
			e.mu.Unlock()
			continue
		}
		fn(&e.sess)
		out := e.sess
		e.mu.Unlock()
		return out
	}
}

// Get returns a snapshot of the session, creating it with defaults if absent.
func (s *Store) Get(id string) conversation.Session {
	return s.Turn(id, func(*conversation.Session) {})
}

// Clear removes the session immediately. Later operations on the same id
// behave as if it never existed.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	e.gone = true
	e.mu.Unlock()
}

// Sweep evicts every session whose last activity is strictly older than the
// TTL and reports how many were removed. Eviction takes the per-session lock,
// so it never races an in-flight turn.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	candidates := make(map[string]*entry, len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.Unlock()

	evicted := 0
	for id, e := range candidates {
		e.mu.Lock()
		if !e.gone && now.Sub(e.sess.LastActivity) > s.ttl {
			e.gone = true
			s.mu.Lock()
			if s.entries[id] == e {
				delete(s.entries, id)
			}
			s.mu.Unlock()
			evicted++
		}
		e.mu.Unlock()
	}
	return evicted
}

// Len reports how many sessions are currently tracked.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper evicts expired sessions on a fixed cadence until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				if n := s.Sweep(t.UTC()); n > 0 {
					log.Printf("[session] swept %d expired sessions", n)
				}
			}
		}
	}()
}
