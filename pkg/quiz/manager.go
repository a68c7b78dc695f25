package quiz

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/notjagan/pokeguide/pkg/model"
)

const DefaultIdleTimeout = 30 * time.Minute

var ErrSessionNotFound = fmt.Errorf("%w: quiz session", model.ErrNotFound)

type managed struct {
	session *Session
	used    time.Time
}

// Manager keeps quiz sessions by ID and drops the ones left idle.
type Manager struct {
	idle   time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*managed
}

func NewManager(idle time.Duration, logger *slog.Logger) *Manager {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		idle:     idle,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*managed),
	}
}

func (m *Manager) Create(deck Deck, opts Options) *Session {
	s := NewSession(deck, opts)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &managed{session: s, used: m.now()}
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	entry.used = m.now()
	return entry.session, nil
}

func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict drops sessions unused for longer than the idle timeout.
func (m *Manager) Evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.idle)
	n := 0
	for id, entry := range m.sessions {
		if entry.used.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.logger.Debug("quiz sessions evicted", "count", n)
	}
	return n
}

// StartEvictor runs Evict on a cron schedule until the returned stop
// function is called.
func (m *Manager) StartEvictor(schedule string) (func(), error) {
	sched := cron.New()
	if _, err := sched.AddFunc(schedule, func() { m.Evict() }); err != nil {
		return nil, fmt.Errorf("invalid eviction schedule %q: %w", schedule, err)
	}
	sched.Start()

	return func() {
		<-sched.Stop().Done()
	}, nil
}
