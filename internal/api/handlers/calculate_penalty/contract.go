package calculate_penalty

import (
	"context"

	calculatePenalty "github.com/m04kA/SMC-StudioBooking/internal/usecase/calculate_penalty"
)

type CalculatePenaltyUseCase interface {
	Execute(ctx context.Context, req *calculatePenalty.Request) (*calculatePenalty.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
