package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

type AvailabilityLoader interface {
	Load(ctx context.Context, specialistID int64) (*domain.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
