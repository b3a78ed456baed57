package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/ratelimit"
)

// AvailabilityResolver интерфейс проверки доступности
type AvailabilityResolver interface {
	CheckResource(ctx context.Context, resourceID int64, start, end time.Time) (domain.AvailabilityDecision, *domain.Resource, error)
}

// ResourceLocker интерфейс блокировки строки ресурса в транзакции
type ResourceLocker interface {
	LockByID(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// RateLimiter интерфейс ограничителя частоты бронирований
type RateLimiter interface {
	Allow(ctx context.Context, userID int64) (ratelimit.Decision, error)
}

// MetricsRecorder счетчик результатов создания бронирований
type MetricsRecorder interface {
	RecordReservation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
