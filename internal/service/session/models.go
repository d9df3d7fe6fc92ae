package session

import (
	"time"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

// Config параметры сессий
type Config struct {
	FetchTimeout time.Duration // 0 = без таймаута (только отмена при закрытии)
	IdleTTL      time.Duration // 0 = сессии не вытесняются
	MaxSessions  int           // 0 = без ограничения
}

// Reported последние дата и время, сообщенные вызывающей стороне
type Reported struct {
	Date string // YYYY-MM-DD, пусто если дата не сообщалась
	Time string // пусто если время не выбиралось для текущей даты
}

// View снимок сессии для отображения
type View struct {
	SessionID         string
	SpecialistID      int64
	State             domain.SelectionState
	EligibleDates     []domain.CalendarDate
	SnapshotFetchedAt time.Time // нулевое значение, если снимка нет
	Reported          Reported
}
