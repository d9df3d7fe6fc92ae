package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

// Loader загружает снимок доступности специалиста из источника
type Loader struct {
	source       AvailabilitySource
	sourceName   string
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewLoader создает новый загрузчик. metrics может быть nil
func NewLoader(source AvailabilitySource, sourceName string, metrics MetricsCollector, logger Logger) *Loader {
	return &Loader{
		source:       source,
		sourceName:   sourceName,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Load получает доступность специалиста и строит из нее неизменяемый снимок.
// Любая ошибка источника или некорректная запись оборачивается в ErrFetchFailure
func (l *Loader) Load(ctx context.Context, specialistID int64) (*domain.Snapshot, error) {
	if specialistID <= 0 {
		l.logger.Warn("LoadAvailability: invalid specialist id=%d", specialistID)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSpecialistID, specialistID)
	}

	l.logger.Info("LoadAvailability: fetching specialist=%d from source=%s", specialistID, l.sourceName)

	started := l.timeProvider.Now()
	records, err := l.source.GetAvailableSlots(ctx, specialistID)
	finished := l.timeProvider.Now()
	if l.metrics != nil {
		l.metrics.ObserveFetchDuration(l.sourceName, finished.Sub(started))
	}

	if err != nil {
		l.logger.Error("LoadAvailability: source=%s failed for specialist=%d: %v", l.sourceName, specialistID, err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}

	snapshot, err := domain.SnapshotFromRecords(specialistID, finished, records)
	if err != nil {
		l.logger.Error("LoadAvailability: invalid availability for specialist=%d: %v", specialistID, err)
		return nil, fmt.Errorf("%w: invalid availability data: %v", ErrFetchFailure, err)
	}

	l.logger.Info("LoadAvailability: loaded %d days for specialist=%d (%d records received)",
		snapshot.Len(), specialistID, len(records))
	return snapshot, nil
}
