// Package session keeps per-admin conversation state for multi-step commands
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/config"
)

// Kind is what the next text message from the session owner will be used for
type Kind string

const (
	// KindBroadcast: next text is broadcast to every user
	KindBroadcast Kind = "broadcast"
	// KindReply: next text is delivered to the author of RequestID
	KindReply Kind = "reply"
)

// Session is the waiting state of one owner
type Session struct {
	Kind      Kind
	RequestID string
	UserID    int64
	Query     string
	StartedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store holds at most one session per owner.
//
// Transitions: idle -Begin-> waiting; waiting -Consume-> idle (session returned);
// waiting -Cancel-> idle; waiting -TTL-> idle (dropped by Consume, Peek or Sweep).
// Begin on a waiting owner replaces the previous session.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]Session
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewStore creates a new session store
func NewStore(cfg *config.SearchConfig, logger zerolog.Logger) *Store {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		sessions: make(map[int64]Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With().Str("component", "session_store").Logger(),
	}
}

// Begin starts a session for ownerID, replacing any previous one
func (s *Store) Begin(ownerID int64, sess Session) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess.StartedAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	if prev, ok := s.sessions[ownerID]; ok && !prev.Expired(now) {
		s.logger.Debug().Int64("owner_id", ownerID).Str("previous", string(prev.Kind)).Msg("Replacing active session")
	}
	s.sessions[ownerID] = sess

	s.logger.Debug().Int64("owner_id", ownerID).Str("kind", string(sess.Kind)).Msg("Session started")
	return sess
}

// Peek returns the active session of ownerID without ending it
func (s *Store) Peek(ownerID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activeLocked(ownerID)
}

// Consume ends and returns the active session of ownerID
func (s *Store) Consume(ownerID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.activeLocked(ownerID)
	if ok {
		delete(s.sessions, ownerID)
	}
	return sess, ok
}

// Cancel ends the active session of ownerID and reports whether there was one
func (s *Store) Cancel(ownerID int64) bool {
	_, ok := s.Consume(ownerID)
	if ok {
		s.logger.Debug().Int64("owner_id", ownerID).Msg("Session cancelled")
	}
	return ok
}

// Sweep drops expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for ownerID, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, ownerID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *Store) activeLocked(ownerID int64) (Session, bool) {
	sess, ok := s.sessions[ownerID]
	if !ok {
		return Session{}, false
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, ownerID)
		s.logger.Debug().Int64("owner_id", ownerID).Str("kind", string(sess.Kind)).Msg("Session expired")
		return Session{}, false
	}
	return sess, true
}
