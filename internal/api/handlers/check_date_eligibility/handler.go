package check_date_eligibility

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSessionNotFound = "сессия не найдена"
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

// Handle GET /api/v1/sessions/{sessionId}/dates/{date}/eligibility
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	date, err := domain.ParseDate(vars["date"])
	if err != nil {
		h.logger.Warn("GET /sessions/{id}/dates/{date}/eligibility - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	s, err := h.manager.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			h.logger.Warn("GET /sessions/{id}/dates/{date}/eligibility - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("GET /sessions/{id}/dates/{date}/eligibility - Failed to get session: session_id=%s, error=%v",
			sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &EligibilityResponse{
		Date:     date.String(),
		Eligible: s.IsEligible(date),
	})
}
