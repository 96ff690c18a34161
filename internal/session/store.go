// Package session scopes gravity simulation state to individual clients.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/san-kum/gravsim/internal/gravity"
)

type entry struct {
	state    *gravity.State
	lastSeen time.Time
}

// Store maps session ids to their simulation state. It is safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Get returns the state for id, creating an empty one on first use.
func (s *Store) Get(id string) *gravity.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &entry{state: gravity.NewState()}
		s.sessions[id] = e
	}
	e.lastSeen = s.now()
	return e.state
}

// Lookup returns the state for id without creating it.
func (s *Store) Lookup(id string) (*gravity.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.state, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions not touched for longer than maxIdle and returns how
// many were removed.
func (s *Store) Sweep(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

const idBytes = 16

// NewID returns a random 128-bit session id in hex.
func NewID() (string, error) {
	var b [idBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// ValidID reports whether id has the shape NewID produces.
func ValidID(id string) bool {
	if len(id) != 2*idBytes {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
