package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// ResourceRepository интерфейс чтения ресурсов с расписанием
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// ReservationRepository интерфейс поиска пересекающихся бронирований
// Внутри транзакции реализация обязана блокировать найденные строки
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, resourceID int64, start, end time.Time) ([]*domain.Reservation, error)
}

// MetricsRecorder счетчик решений о доступности
type MetricsRecorder interface {
	RecordDecision(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
