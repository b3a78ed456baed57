package calculate_penalty

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// PlanRepository интерфейс репозитория тарифных планов
type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SubscriptionPlan, error)
}

// MetricsRecorder счетчик расчетов штрафа
type MetricsRecorder interface {
	RecordPenalty(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
