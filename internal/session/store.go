// Package session keeps login sessions in a transient map. Sessions age in
// logical ticks: every store operation advances the map's clock, so a session
// survives only a bounded amount of store activity unless it is refreshed.
//
// The transient map itself is single-threaded; the store provides the lock
// that makes it shareable between handlers.
package session

import (
	"sync"

	"github.com/google/uuid"

	"transientmap"
)

// Session is the value stored per session ID.
type Session struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Store wraps a transientmap.Map of sessions behind a mutex.
type Store struct {
	mu       sync.Mutex
	sessions *transientmap.Map[string, Session]
}

// NewStore returns a store whose sessions expire after lifetime ticks of
// store activity.
func NewStore(lifetime uint64) *Store {
	return &Store{
		sessions: transientmap.New[string, Session](lifetime),
	}
}

// Create registers a new session for the user and returns it.
func (s *Store) Create(userID, username string) Session {
	sess := Session{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Insert(sess.ID, sess)
	return sess
}

// Lookup returns the session for id if it is still live. With refresh set,
// a hit is re-inserted, resetting the session's age to zero.
func (s *Store) Lookup(id string, refresh bool) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions.Get(id)
	if !ok {
		return Session{}, false
	}
	if refresh {
		s.sessions.Insert(id, sess)
	}
	return sess, true
}

// Revoke removes the session unconditionally, expired or not, and reports
// whether one was physically present.
func (s *Store) Revoke(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions.Remove(id)
	return ok
}

// Sweep prunes every expired session and returns the IDs that were removed.
// Nothing sweeps automatically; callers decide when stale sessions are
// reclaimed.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Prune()
}

// Active returns the number of live sessions. Expired sessions that have not
// been swept yet are not counted.
func (s *Store) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Len()
}

// Snapshot returns the live sessions at this instant. The snapshot is
// read-only: it neither prunes nor ages anything.
func (s *Store) Snapshot() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Session, 0, s.sessions.Len())
	for _, sess := range s.sessions.All() {
		out = append(out, sess)
	}
	return out
}
