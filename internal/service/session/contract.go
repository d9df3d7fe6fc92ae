package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

// AvailabilityLoader загрузчик снимка доступности
type AvailabilityLoader interface {
	Load(ctx context.Context, specialistID int64) (*domain.Snapshot, error)
}

// MetricsCollector метрики сессий
type MetricsCollector interface {
	ObserveFetch(outcome string)
	ObserveSelection(event string)
	SetActiveSessions(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string)     {}
func (noopMetrics) ObserveSelection(string) {}
func (noopMetrics) SetActiveSessions(int)   {}
