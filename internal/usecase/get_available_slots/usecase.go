package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
)

// UseCase use case для получения слотов ресурса на дату
type UseCase struct {
	enumerator         SlotEnumerator
	defaultSlotMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(enumerator SlotEnumerator, defaultSlotMinutes int, logger Logger) *UseCase {
	return &UseCase{
		enumerator:         enumerator,
		defaultSlotMinutes: defaultSlotMinutes,
		logger:             logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultSlotMinutes
	}

	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s, duration=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), duration)

	// 2. Получаем последовательность слотов
	seq, err := uc.enumerator.EnumerateSlots(ctx, req.ResourceID, req.Date, duration)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidSlotDuration):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlotDuration, err)
		case errors.Is(err, availability.ErrResourceNotFound):
			return nil, ErrResourceNotFound
		case errors.Is(err, availability.ErrResourceInactive):
			return nil, ErrResourceInactive
		default:
			uc.logger.Error("GetAvailableSlots: resource=%d: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 3. Материализуем последовательность для ответа
	slots := slices.Collect(seq)
	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	return &Response{
		ResourceID:      req.ResourceID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
