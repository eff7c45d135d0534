package calculator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// StoreConfig bounds the session store. Zero values disable the limit.
type StoreConfig struct {
	MaxSessions int
	TTL         time.Duration
}

// Session is a snapshot of one stored calculator.
type Session struct {
	ID       string
	State    State
	LastUsed time.Time
}

type entry struct {
	state    State
	lastUsed time.Time
}

// Store keeps one calculator per session in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	cfg      StoreConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore(cfg StoreConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*entry),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a new session in the initial state.
func (s *Store) Create() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		return Session{}, fmt.Errorf("%w: limit %d", ErrTooManySessions, s.cfg.MaxSessions)
	}

	id := uuid.New().String()
	e := &entry{state: New(), lastUsed: s.now()}
	s.sessions[id] = e
	sessionsGauge.Inc()

	s.logger.Debug("session created", zap.String("session_id", id))
	return Session{ID: id, State: e.state, LastUsed: e.lastUsed}, nil
}

// Get returns the session without touching its idle timer.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return Session{ID: id, State: e.state, LastUsed: e.lastUsed}, nil
}

// Update runs fn on the session state and stores its result. fn runs under
// the store lock and must not call back into the store.
func (s *Store) Update(id string, fn func(State) State) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.state = fn(e.state)
	e.lastUsed = s.now()
	return Session{ID: id, State: e.state, LastUsed: e.lastUsed}, nil
}

// Press applies keys to the session in order.
func (s *Store) Press(id string, keys ...Key) (Session, error) {
	return s.Update(id, func(st State) State {
		return st.PressAll(keys...)
	})
}

// Delete removes the session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	sessionsGauge.Dec()

	s.logger.Debug("session deleted", zap.String("session_id", id))
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep(now time.Time) int {
	if s.cfg.TTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastUsed) > s.cfg.TTL {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		sessionsGauge.Sub(float64(evicted))
		s.logger.Info("expired idle sessions",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(s.sessions)),
		)
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}
