package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = eris.New("wizard: session not found")

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Manager is an in-memory registry of form sessions. Each session is
// guarded by its own lock so a slow calculation only blocks that session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	calc     Calculator
	delay    time.Duration
	ttl      time.Duration
	now      func() time.Time
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// ResultDelay is the simulated delay before results are shown.
	ResultDelay time.Duration
	// TTL evicts sessions idle for longer than this. Zero disables eviction.
	TTL time.Duration
}

// NewManager creates a Manager that computes results with calc.
func NewManager(calc Calculator, cfg ManagerConfig) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		calc:     calc,
		delay:    cfg.ResultDelay,
		ttl:      cfg.TTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create starts a new session on step 1.
func (m *Manager) Create() Session {
	s := NewSession(uuid.New().String(), m.now())

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s}
	m.mu.Unlock()

	return *s
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Session, error) {
	return m.Do(id, func(*Session) error { return nil })
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return eris.Wrap(ErrNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Do runs fn against the session under its lock and returns a snapshot
// taken afterwards, whether or not fn failed.
func (m *Manager) Do(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return Session{}, eris.Wrap(ErrNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn(e.session)
	e.session.UpdatedAt = m.now()
	return *e.session, err
}

// Calculate runs the calculation step for a session.
func (m *Manager) Calculate(ctx context.Context, id string) (Session, error) {
	return m.Do(id, func(s *Session) error {
		return s.Calculate(ctx, m.calc, m.delay)
	})
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue // busy, so not idle
		}
		if e.session.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if m.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				zap.L().Info("wizard: expired sessions evicted", zap.Int("count", n))
			}
		}
	}
}
