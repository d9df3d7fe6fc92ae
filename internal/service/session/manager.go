package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager хранит открытые сессии выбора в памяти.
// Сессии ничего не сохраняют и живут до закрытия или вытеснения по простою
type Manager struct {
	loader       AvailabilityLoader
	cfg          Config
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager создает менеджер сессий. metricsCollector может быть nil
func NewManager(loader AvailabilityLoader, cfg Config, metricsCollector MetricsCollector, logger Logger) *Manager {
	if metricsCollector == nil {
		metricsCollector = noopMetrics{}
	}
	return &Manager{
		loader:       loader,
		cfg:          cfg,
		metrics:      metricsCollector,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		sessions:     make(map[string]*Session),
	}
}

// Create открывает сессию и сразу запускает загрузку доступности специалиста
func (m *Manager) Create(specialistID int64) (*Session, error) {
	if specialistID <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSpecialistID, specialistID)
	}

	m.mu.Lock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		m.logger.Warn("CreateSession: limit of %d sessions reached", m.cfg.MaxSessions)
		return nil, ErrTooManySessions
	}

	s := newSession(uuid.NewString(), m.loader, m.cfg, m.metrics, m.timeProvider, m.logger)
	m.sessions[s.ID()] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetActiveSessions(count)
	m.logger.Info("CreateSession: opened session=%s for specialist=%d", s.ID(), specialistID)

	if err := s.ChangeSpecialist(specialistID); err != nil {
		m.remove(s.ID())
		s.Close()
		return nil, err
	}
	return s, nil
}

// Get возвращает открытую сессию
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close закрывает и удаляет сессию
func (m *Manager) Close(id string) error {
	s := m.remove(id)
	if s == nil {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Len число открытых сессий
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// EvictIdle закрывает сессии без действий дольше IdleTTL и возвращает их число
func (m *Manager) EvictIdle() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	deadline := m.timeProvider.Now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastActivity().Before(deadline) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		m.metrics.SetActiveSessions(count)
		m.logger.Info("EvictIdle: evicted %d idle sessions, %d left", len(expired), count)
	}
	return len(expired)
}

// Run периодически вытесняет простаивающие сессии до отмены ctx
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.cfg.IdleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

// Shutdown закрывает все сессии и ждет завершения их загрузок
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	for _, s := range all {
		s.Wait()
	}
	m.metrics.SetActiveSessions(0)
	m.logger.Info("Shutdown: closed %d sessions", len(all))
}

func (m *Manager) remove(id string) *Session {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	m.metrics.SetActiveSessions(count)
	return s
}
