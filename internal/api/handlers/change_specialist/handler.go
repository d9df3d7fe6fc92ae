package change_specialist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса, ожидается положительный specialistId"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgSessionNotFound     = "сессия не найдена"
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

// Handle PUT /api/v1/sessions/{sessionId}/specialist
// Загрузка идет асинхронно, поэтому ответ 202 с loading=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ChangeSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/specialist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	s, err := h.manager.Get(sessionID)
	if err == nil {
		err = s.ChangeSpecialist(req.SpecialistID)
	}
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionClosed):
			h.logger.Warn("PUT /sessions/{id}/specialist - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, session.ErrInvalidSpecialistID):
			h.logger.Warn("PUT /sessions/{id}/specialist - Invalid specialist ID: %d", req.SpecialistID)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)

		default:
			h.logger.Error("PUT /sessions/{id}/specialist - Failed to change specialist: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/specialist - Loading availability: session_id=%s, specialist_id=%d",
		sessionID, req.SpecialistID)
	handlers.RespondJSON(w, http.StatusAccepted, handlers.FromSessionView(s.View()))
}
