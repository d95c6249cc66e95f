package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live sessions. A session ends after ttl without access; expired
// sessions are dropped lazily on lookup and on creation.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	onChange func(active int)
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnChange registers a callback invoked with the number of live sessions
// every time it changes.
func (s *Store) OnChange(fn func(active int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastSeen:  now,
	}
	s.sessions[sess.ID] = sess
	s.notifyLocked()
	return sess
}

// Get returns the live session with id and refreshes its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		s.notifyLocked()
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// GetOrCreate returns the session with id, or a new one when id is unknown or
// expired. created reports which of the two happened.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

func (s *Store) sweepLocked() {
	now := s.now()
	removed := false
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed = true
		}
	}
	if removed {
		s.notifyLocked()
	}
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange(len(s.sessions))
	}
}
