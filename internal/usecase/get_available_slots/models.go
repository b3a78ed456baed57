package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	ResourceID int64
	Date       time.Time
	// DurationMinutes длительность слота, 0 - значение по умолчанию из конфигурации
	DurationMinutes int
}

// Response слоты ресурса на дату в порядке возрастания времени
type Response struct {
	ResourceID      int64
	Date            time.Time
	DurationMinutes int
	Slots           []domain.TimeSlot
}

// AvailableCount возвращает количество свободных слотов
func (r *Response) AvailableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
