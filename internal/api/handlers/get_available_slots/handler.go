package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/service/availability"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgFailedToLoad        = "не удалось загрузить доступные слоты"
)

type Handler struct {
	loader AvailabilityLoader
	logger Logger
}

func NewHandler(loader AvailabilityLoader, logger Logger) *Handler {
	return &Handler{
		loader: loader,
		logger: logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistIDStr := mux.Vars(r)["specialistId"]
	specialistID, err := strconv.ParseInt(specialistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/available-slots - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	snapshot, err := h.loader.Load(r.Context(), specialistID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSpecialistID):
			h.logger.Warn("GET /specialists/{id}/available-slots - Invalid specialist ID: %d", specialistID)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)

		case errors.Is(err, availability.ErrFetchFailure):
			h.logger.Error("GET /specialists/{id}/available-slots - Source failed: specialist_id=%d, error=%v", specialistID, err)
			handlers.RespondBadGateway(w, msgFailedToLoad)

		default:
			h.logger.Error("GET /specialists/{id}/available-slots - Failed to get slots: specialist_id=%d, error=%v", specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/available-slots - Slots retrieved successfully: specialist_id=%d, days_count=%d",
		specialistID, snapshot.Len())
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snapshot))
}
