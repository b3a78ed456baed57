package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

// SlotsQuery query параметры запроса
type SlotsQuery struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Duration string `json:"duration" validate:"omitempty,number"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ResourceID      int64           `json:"resourceId"`
	DurationMinutes int             `json:"durationMinutes"`
	AvailableCount  int             `json:"availableCount"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func (q *SlotsQuery) ToUseCaseRequest(resourceID int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, q.Date)
	if err != nil {
		return nil, err
	}

	duration := 0
	if q.Duration != "" {
		duration, err = strconv.Atoi(q.Duration)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		ResourceID:      resourceID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.Format(time.RFC3339),
			EndTime:   slot.EndTime.Format(time.RFC3339),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ResourceID:      resp.ResourceID,
		DurationMinutes: resp.DurationMinutes,
		AvailableCount:  resp.AvailableCount(),
		Slots:           slots,
	}
}
