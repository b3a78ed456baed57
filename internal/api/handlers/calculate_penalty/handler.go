package calculate_penalty

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	calculatePenalty "github.com/m04kA/SMC-StudioBooking/internal/usecase/calculate_penalty"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "ошибка валидации запроса"
	msgPlanNotFound       = "тарифный план не найден"
)

type Handler struct {
	useCase CalculatePenaltyUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePenaltyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/penalties/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculatePenaltyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /penalties/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, calculatePenalty.ErrPlanNotFound):
			handlers.RespondNotFound(w, msgPlanNotFound)
		case errors.Is(err, calculatePenalty.ErrInvalidInput):
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, []string{err.Error()})
		default:
			h.logger.Error("POST /penalties/calculate - Failed to calculate penalty: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
