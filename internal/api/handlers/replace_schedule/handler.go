package replace_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/resources"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации расписания"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgForbidden          = "изменять расписание может только администратор"
	msgNotFound           = "ресурс не найден"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/resources/{resourceId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/schedule - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	windows, err := h.service.ReplaceWindows(r.Context(), resourceID, req.ToServiceRequest(user))
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrAccessDenied):
			h.logger.Warn("PUT /resources/{id}/schedule - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrInvalidWindow):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, []string{err.Error()})

		case errors.Is(err, resources.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /resources/{id}/schedule - Failed to replace schedule: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{id}/schedule - Schedule replaced: resource_id=%d, windows=%d, user_id=%d",
		resourceID, len(windows), user.ID)
	handlers.RespondJSON(w, http.StatusOK, &ScheduleResponse{ResourceID: resourceID, Windows: windows})
}
