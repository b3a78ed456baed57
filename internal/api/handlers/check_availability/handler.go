package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/check_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingInterval   = "параметры start и end обязательны"
	msgInvalidTime       = "некорректный формат времени, ожидается RFC3339"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability?start=...&end=...
// Отрицательное решение возвращается со статусом 200: это ответ, а не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := CheckAvailabilityQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if err := handlers.Validate(query); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgMissingInterval, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := query.ToUseCaseRequest(resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidResourceID)
		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to check: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
