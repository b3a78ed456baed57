package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidQuery      = "некорректные параметры: date (YYYY-MM-DD) обязателен, duration - число минут"
	msgInvalidDuration   = "недопустимая длительность слота"
	msgResourceNotFound  = "ресурс не найден"
	msgResourceInactive  = "ресурс недоступен для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := SlotsQuery{
		Date:     r.URL.Query().Get("date"),
		Duration: r.URL.Query().Get("duration"),
	}
	if err := handlers.Validate(query); err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid query: %v", err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidQuery, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Failed to parse query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrResourceInactive):
			handlers.RespondUnprocessable(w, msgResourceInactive, nil)

		case errors.Is(err, getAvailableSlots.ErrInvalidSlotDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /resources/{id}/slots - Failed to get slots: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/slots - resource_id=%d, date=%s, slots=%d",
		resourceID, query.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
