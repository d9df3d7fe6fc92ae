package select_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSessionNotFound    = "сессия не найдена"
)

type Handler struct {
	manager SessionManager
	logger  Logger
}

func NewHandler(manager SessionManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sessions/{sessionId}/date
// Отсутствие слотов на дату это не ошибка: ответ 200 с errorMessage
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		date    domain.CalendarDate
		hasDate = req.Date != nil
	)
	if hasDate {
		parsed, err := domain.ParseDate(*req.Date)
		if err != nil {
			h.logger.Warn("PUT /sessions/{id}/date - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	s, err := h.manager.Get(sessionID)
	if err == nil {
		if hasDate {
			err = s.SelectDate(date)
		} else {
			err = s.ClearDate()
		}
	}
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionClosed) {
			h.logger.Warn("PUT /sessions/{id}/date - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("PUT /sessions/{id}/date - Failed to select date: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	view := s.View()
	if hasDate {
		h.logger.Info("PUT /sessions/{id}/date - Date selected: session_id=%s, date=%s, slots_count=%d",
			sessionID, date, len(view.State.SelectedDaySlots))
	} else {
		h.logger.Info("PUT /sessions/{id}/date - Date cleared: session_id=%s", sessionID)
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(view))
}
