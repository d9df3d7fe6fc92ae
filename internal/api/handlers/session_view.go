package handlers

import (
	"time"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
)

// SessionResponse HTTP модель сессии выбора слота
type SessionResponse struct {
	SessionID         string                `json:"sessionId"`
	SpecialistID      int64                 `json:"specialistId"`
	Phase             domain.SelectionPhase `json:"phase"`
	View              domain.SelectionView  `json:"view"`
	Loading           bool                  `json:"loading"`
	SelectedDate      *domain.CalendarDate  `json:"selectedDate"`
	SelectedDaySlots  []string              `json:"selectedDaySlots"`
	ErrorMessage      string                `json:"errorMessage,omitempty"`
	EligibleDates     []domain.CalendarDate `json:"eligibleDates"`
	SnapshotFetchedAt *time.Time            `json:"snapshotFetchedAt"`
	ReportedDate      string                `json:"reportedDate,omitempty"`
	ReportedTime      string                `json:"reportedTime,omitempty"`
}

// FromSessionView конвертирует состояние сессии в HTTP ответ
func FromSessionView(v session.View) *SessionResponse {
	resp := &SessionResponse{
		SessionID:        v.SessionID,
		SpecialistID:     v.SpecialistID,
		Phase:            v.State.Phase(),
		View:             v.State.View(),
		Loading:          v.State.Loading,
		SelectedDate:     v.State.SelectedDate,
		SelectedDaySlots: v.State.SelectedDaySlots,
		ErrorMessage:     v.State.ErrorMessage,
		EligibleDates:    v.EligibleDates,
		ReportedDate:     v.Reported.Date,
		ReportedTime:     v.Reported.Time,
	}
	if resp.SelectedDaySlots == nil {
		resp.SelectedDaySlots = []string{}
	}
	if resp.EligibleDates == nil {
		resp.EligibleDates = []domain.CalendarDate{}
	}
	if !v.SnapshotFetchedAt.IsZero() {
		fetchedAt := v.SnapshotFetchedAt
		resp.SnapshotFetchedAt = &fetchedAt
	}
	return resp
}
