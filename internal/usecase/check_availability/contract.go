package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// AvailabilityResolver интерфейс проверки доступности
type AvailabilityResolver interface {
	Check(ctx context.Context, resourceID int64, start, end time.Time) (domain.AvailabilityDecision, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
