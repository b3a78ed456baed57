package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	createReservation "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgRateLimited        = "превышен лимит бронирований, повторите позже"
	msgUnavailable        = "выбранный интервал недоступен"
)

// retryAfterConcurrent пауза, рекомендуемая клиенту при конфликте транзакций
const retryAfterConcurrent = time.Second

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(user.ID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			unavailable *availability.UnavailableError
			rateLimited *createReservation.RateLimitedError
		)
		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /reservations - Unavailable: user_id=%d, resource_id=%d, reason=%s",
				user.ID, req.ResourceID, unavailable.Decision.Reason)
			decision := handlers.FromDecision(unavailable.Decision)
			handlers.RespondErrorWithDetails(w, handlers.DecisionStatus(unavailable.Decision.Reason), msgUnavailable, decision)

		case errors.As(err, &rateLimited):
			h.logger.Warn("POST /reservations - Rate limited: user_id=%d", user.ID)
			handlers.RespondTooManyRequests(w, msgRateLimited, rateLimited.RetryAfter)

		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, []string{err.Error()})

		case errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations - Concurrent update: user_id=%d, resource_id=%d", user.ID, req.ResourceID)
			handlers.RespondServiceUnavailable(w, retryAfterConcurrent)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, resource_id=%d, error=%v",
				user.ID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, resource_id=%d",
		result.ID, user.ID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
