package get_available_slots

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SlotEnumerator интерфейс перечисления слотов ресурса на дату
type SlotEnumerator interface {
	EnumerateSlots(ctx context.Context, resourceID int64, date time.Time, slotDurationMinutes int) (iter.Seq[domain.TimeSlot], error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
