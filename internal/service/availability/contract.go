package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

// AvailabilitySource источник доступности специалиста (HTTP сервис или БД)
type AvailabilitySource interface {
	GetAvailableSlots(ctx context.Context, specialistID int64) ([]domain.AvailabilityRecord, error)
}

// MetricsCollector метрики загрузки (опционально)
type MetricsCollector interface {
	ObserveFetchDuration(source string, elapsed time.Duration)
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
