package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rackwalk/rackwalk/internal/models"
)

// ErrNotFound is returned for unknown or deleted session ids. The store
// never creates a session implicitly on an unknown id.
var ErrNotFound = errors.New("session not found")

// ErrSessionFull is returned when an append would exceed Options.MaxItems.
var ErrSessionFull = errors.New("session item limit reached")

// Options bound in-memory growth. Zero values disable the corresponding
// limit.
type Options struct {
	// IdleTimeout is how long a session may go without an append or read
	// before the reaper removes it.
	IdleTimeout time.Duration
	// MaxItems caps the number of records per session.
	MaxItems int
}

// session pairs the session data with its own lock so appends and reads
// on one session serialize without contending with other sessions.
type session struct {
	mu         sync.Mutex
	data       models.ScanSession
	lastActive time.Time
}

// SessionStore owns all session state. It is purely in-memory: state is
// discarded on process restart, and reset otherwise only by Delete or the
// idle reaper.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	opts     Options
	now      func() time.Time
}

func New(opts Options) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		opts:     opts,
		now:      time.Now,
	}
}

// Create allocates a new empty session and returns its id.
func (s *SessionStore) Create() (models.ScanSession, error) {
	now := s.now()
	sess := &session{
		data: models.ScanSession{
			ID:        uuid.NewString(),
			Items:     []models.Record{},
			CreatedAt: now,
		},
		lastActive: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.data.ID] = sess
	return sess.data, nil
}

// Exists reports whether the session id is known.
func (s *SessionStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Append adds a record to the end of the session's item log.
func (s *SessionStore) Append(id string, record models.Record) error {
	sess, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.data.Items == nil {
		// Deleted while we were waiting on the session lock.
		return ErrNotFound
	}
	if s.opts.MaxItems > 0 && len(sess.data.Items) >= s.opts.MaxItems {
		return ErrSessionFull
	}
	sess.data.Items = append(sess.data.Items, record)
	sess.lastActive = s.now()
	return nil
}

// Items returns a point-in-time copy of the session's records in capture
// order. Mutating the returned slice does not affect the store.
func (s *SessionStore) Items(id string) ([]models.Record, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	return sess.Items, nil
}

// Session returns a snapshot of the session, items included.
func (s *SessionStore) Session(id string) (models.ScanSession, error) {
	sess, ok := s.lookup(id)
	if !ok {
		return models.ScanSession{}, ErrNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.data.Items == nil {
		return models.ScanSession{}, ErrNotFound
	}
	snapshot := sess.data
	snapshot.Items = make([]models.Record, len(sess.data.Items))
	copy(snapshot.Items, sess.data.Items)
	sess.lastActive = s.now()
	return snapshot, nil
}

// Sessions returns snapshots of every live session.
func (s *SessionStore) Sessions() []models.ScanSession {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	result := make([]models.ScanSession, 0, len(ids))
	for _, id := range ids {
		if snapshot, err := s.Session(id); err == nil {
			result = append(result, snapshot)
		}
	}
	return result
}

// Delete removes the session and all its records. Deleting an already
// deleted session fails with ErrNotFound; callers treat that as non-fatal.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	// Wait out any in-flight append so no writer is left mutating
	// orphaned state, then mark the session dead.
	sess.mu.Lock()
	sess.data.Items = nil
	sess.mu.Unlock()
	return nil
}

// StartReaper runs the idle-session reaper until ctx is cancelled. It is a
// no-op when Options.IdleTimeout is zero.
func (s *SessionStore) StartReaper(ctx context.Context, interval time.Duration) {
	if s.opts.IdleTimeout <= 0 {
		return
	}
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
			case <-ticker.C:
				s.reap()
			}
		}
	}()
}

func (s *SessionStore) reap() {
	cutoff := s.now().Add(-s.opts.IdleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastActive.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			slog.Info("Reaped idle session", "session_id", id, "idle_timeout", s.opts.IdleTimeout)
		}
	}
}

func (s *SessionStore) lookup(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}
