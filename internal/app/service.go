package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("session not found")
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidStep = errors.New("invalid history step")
)

// Session is the in-memory state tracked per browser page.
type Session struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

// Service owns all live sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets how long an untouched session survives a sweep.
func WithTTL(d time.Duration) Option { return func(s *Service) { s.ttl = d } }

// WithMaxSessions caps live sessions; zero means unlimited.
func WithMaxSessions(n int) Option { return func(s *Service) { s.max = n } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// NewService creates an empty service.
func NewService(opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*Session),
		ttl:      30 * time.Minute,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "sessions")
	return s
}

// Create starts a new game session.
func (s *Service) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}
	now := s.now()
	sess := &Session{ID: uuid.NewString(), Game: domain.New(), Created: now, Updated: now}
	s.sessions[sess.ID] = sess
	s.log.Debug("session created", "id", sess.ID)
	return *sess
}

// Get returns a copy of the session.
func (s *Service) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *sess, nil
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// PlaceMark plays the next mark at cell. An occupied cell or a won board is
// not an error; the session is returned unchanged.
func (s *Service) PlaceMark(id string, cell int) (Session, error) {
	if cell < 0 || cell >= domain.Size {
		return Session{}, fmt.Errorf("%w: %d", ErrInvalidCell, cell)
	}
	return s.apply(id, func(g domain.Game) (domain.Game, error) {
		return g.PlaceMark(cell), nil
	})
}

// JumpTo moves the cursor to a history step.
func (s *Service) JumpTo(id string, step int) (Session, error) {
	return s.apply(id, func(g domain.Game) (domain.Game, error) {
		if step < 0 || step >= g.Len() {
			return g, fmt.Errorf("%w: %d of %d", ErrInvalidStep, step, g.Len())
		}
		return g.JumpTo(step), nil
	})
}

// ToggleSortOrder flips the history display order.
func (s *Service) ToggleSortOrder(id string) (Session, error) {
	return s.apply(id, func(g domain.Game) (domain.Game, error) {
		return g.ToggleSortOrder(), nil
	})
}

func (s *Service) apply(id string, fn func(domain.Game) (domain.Game, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	g, err := fn(sess.Game)
	if err != nil {
		return *sess, err
	}
	sess.Game = g
	sess.Updated = s.now()
	return *sess, nil
}

// Sweep drops sessions not updated within the TTL and reports how many.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.Updated) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Service) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Info("expired sessions removed", "count", n, "live", s.Len())
			}
		}
	}
}

func (s *Service) evictOldestLocked() {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.Updated.Before(oldest.Updated) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
		s.log.Warn("session limit reached, evicted oldest", "id", oldest.ID, "max", s.max)
	}
}
