package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса, ожидается положительный specialistId"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgTooManySessions     = "слишком много открытых сессий, попробуйте позже"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	s, err := h.manager.Create(req.SpecialistID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidSpecialistID):
			h.logger.Warn("POST /sessions - Invalid specialist ID: %d", req.SpecialistID)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)

		case errors.Is(err, session.ErrTooManySessions):
			h.logger.Warn("POST /sessions - Session limit reached: specialist_id=%d", req.SpecialistID)
			handlers.RespondTooManyRequests(w, msgTooManySessions)

		default:
			h.logger.Error("POST /sessions - Failed to create session: specialist_id=%d, error=%v", req.SpecialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, specialist_id=%d", s.ID(), req.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSessionView(s.View()))
}
