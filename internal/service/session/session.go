package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/internal/service/selection"
	"github.com/m04kA/SMC-SlotPicker/pkg/metrics"
)

// Session сессия выбора слота для одного пользователя.
// Владеет контроллером выбора и асинхронно загружает доступность специалиста.
// Все обращения к контроллеру сериализуются мьютексом
type Session struct {
	id           string
	loader       AvailabilityLoader
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
	fetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	controller   *selection.Controller
	specialistID int64
	generation   uint64 // идентификатор активного запроса загрузки
	cancelFetch  context.CancelFunc
	reported     Reported
	lastActivity time.Time
	closed       bool

	inflight sync.WaitGroup
}

func newSession(
	id string,
	loader AvailabilityLoader,
	cfg Config,
	metricsCollector MetricsCollector,
	timeProvider TimeProvider,
	logger Logger,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:           id,
		loader:       loader,
		metrics:      metricsCollector,
		timeProvider: timeProvider,
		logger:       logger,
		fetchTimeout: cfg.FetchTimeout,
		ctx:          ctx,
		cancel:       cancel,
		lastActivity: timeProvider.Now(),
	}
	s.controller = selection.NewController(&sessionListener{s: s})
	return s
}

// ID идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// ChangeSpecialist запускает загрузку доступности для specialistID.
// Ответ на любой предыдущий незавершенный запрос будет отброшен
func (s *Session) ChangeSpecialist(specialistID int64) error {
	if specialistID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSpecialistID, specialistID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startFetchLocked(specialistID)
}

// Refresh повторно загружает доступность текущего специалиста
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.specialistID == 0 {
		return ErrNoSpecialist
	}
	return s.startFetchLocked(s.specialistID)
}

// SelectDate выбирает дату по текущему (возможно, старому) снимку
func (s *Session) SelectDate(d domain.CalendarDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touchLocked(); err != nil {
		return err
	}
	s.controller.SelectDate(d)
	return nil
}

// ClearDate сбрасывает выбранную дату
func (s *Session) ClearDate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touchLocked(); err != nil {
		return err
	}
	s.controller.ClearDate()
	s.reported = Reported{}
	return nil
}

// SelectTime сообщает выбранное время
func (s *Session) SelectTime(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.touchLocked(); err != nil {
		return err
	}
	s.controller.SelectTime(t)
	return nil
}

// IsEligible можно ли выбрать дату в текущем снимке.
// Чтение тоже считается активностью пользователя
func (s *Session) IsEligible(d domain.CalendarDate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchReadLocked()
	return s.controller.IsEligible(d)
}

// View возвращает состояние сессии.
// Опрос состояния во время загрузки продлевает жизнь сессии
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchReadLocked()
	return View{
		SessionID:         s.id,
		SpecialistID:      s.specialistID,
		State:             s.controller.State(),
		EligibleDates:     s.controller.EligibleDates(),
		SnapshotFetchedAt: s.controller.Snapshot().FetchedAt(),
		Reported:          s.reported,
	}
}

// LastActivity время последнего действия пользователя
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActivity
}

// Wait ждет завершения всех запущенных загрузок
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close закрывает сессию и отменяет незавершенные загрузки
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.logger.Info("Session: closed session=%s specialist=%d", s.id, s.specialistID)
}

func (s *Session) touchLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.lastActivity = s.timeProvider.Now()
	return nil
}

// touchReadLocked обновляет активность без ошибки для закрытой сессии
func (s *Session) touchReadLocked() {
	if !s.closed {
		s.lastActivity = s.timeProvider.Now()
	}
}

func (s *Session) startFetchLocked(specialistID int64) error {
	if err := s.touchLocked(); err != nil {
		return err
	}

	if s.cancelFetch != nil {
		s.cancelFetch()
	}

	s.generation++
	token := s.generation
	s.specialistID = specialistID

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.fetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(s.ctx, s.fetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(s.ctx)
	}
	s.cancelFetch = cancel

	s.controller.BeginLoading()
	s.logger.Info("Session: session=%s fetching availability for specialist=%d (request=%d)", s.id, specialistID, token)

	s.inflight.Add(1)
	go s.fetch(ctx, cancel, token, specialistID)

	return nil
}

func (s *Session) fetch(ctx context.Context, cancel context.CancelFunc, token uint64, specialistID int64) {
	defer s.inflight.Done()
	defer cancel()

	snapshot, err := s.loader.Load(ctx, specialistID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Применяется только ответ на активный запрос: порядок прихода ответов не важен
	if s.closed || token != s.generation || specialistID != s.specialistID {
		s.logger.Warn("Session: session=%s discarded stale availability for specialist=%d (request=%d, active=%d)",
			s.id, specialistID, token, s.generation)
		s.metrics.ObserveFetch(metrics.FetchOutcomeDiscarded)
		return
	}
	s.cancelFetch = nil

	if err != nil {
		s.logger.Error("Session: session=%s failed to load availability for specialist=%d: %v", s.id, specialistID, err)
		s.controller.FailLoading()
		s.metrics.ObserveFetch(metrics.FetchOutcomeFailure)
		return
	}

	s.controller.ReplaceSnapshot(snapshot)
	s.metrics.ObserveFetch(metrics.FetchOutcomeSuccess)
	s.logger.Info("Session: session=%s applied availability for specialist=%d: %d days", s.id, specialistID, snapshot.Len())
}

// sessionListener вызывается контроллером под мьютексом сессии
type sessionListener struct {
	s *Session
}

func (l *sessionListener) OnDateSelect(isoDate string) {
	if l.s.reported.Date != isoDate {
		l.s.reported.Time = ""
	}
	l.s.reported.Date = isoDate
	l.s.metrics.ObserveSelection(domain.EventDateSelected)
}

func (l *sessionListener) OnTimeSelect(t string) {
	l.s.reported.Time = t
	l.s.metrics.ObserveSelection(domain.EventTimeSelected)
}
