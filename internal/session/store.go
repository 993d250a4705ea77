// Package session holds the pending interaction of each chat user.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

// Store keeps at most one ImportSession per user. Begin replaces any previous
// session; Consume reads and removes in one step.
//
// Without a TTL sessions live until consumed or superseded. With a TTL,
// expired sessions are invisible to Peek/Consume and removed by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]model.ImportSession
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires sessions older than ttl. ttl <= 0 disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[int64]model.ImportSession),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin installs a new session for userID, discarding any previous one.
func (s *Store) Begin(userID int64, awaiting model.Await) model.ImportSession {
	if awaiting == nil {
		panic("session: Begin with nil await")
	}

	sess := model.ImportSession{
		UserID:    userID,
		Awaiting:  awaiting,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
	return sess
}

// Peek returns userID's session without removing it.
func (s *Store) Peek(userID int64) (model.ImportSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(userID)
	return sess, ok
}

// Consume removes and returns userID's session.
func (s *Store) Consume(userID int64) (model.ImportSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(userID)
	if ok {
		delete(s.sessions, userID)
	}
	return sess, ok
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// live must be called with mu held. Expired sessions are dropped on sight.
func (s *Store) live(userID int64) (model.ImportSession, bool) {
	sess, ok := s.sessions[userID]
	if !ok {
		return model.ImportSession{}, false
	}
	if s.expired(sess) {
		delete(s.sessions, userID)
		return model.ImportSession{}, false
	}
	return sess, true
}

func (s *Store) expired(sess model.ImportSession) bool {
	return s.ttl > 0 && s.now().Sub(sess.CreatedAt) >= s.ttl
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
