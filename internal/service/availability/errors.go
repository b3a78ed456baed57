package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrUnavailable общий признак отрицательного решения о доступности
	ErrUnavailable = errors.New("availability: interval is not available")

	// ErrInvalidInterval возвращается, когда end <= start
	ErrInvalidInterval = errors.New("availability: end time must be after start time")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("availability: resource not found")

	// ErrResourceInactive возвращается, когда ресурс выключен
	ErrResourceInactive = errors.New("availability: resource is inactive")

	// ErrScheduleUnavailable возвращается, когда ресурс закрыт в этот день
	ErrScheduleUnavailable = errors.New("availability: resource is closed this day")

	// ErrOutsideOperatingHours возвращается, когда интервал не помещается ни в одно окно
	ErrOutsideOperatingHours = errors.New("availability: outside operating hours")

	// ErrReservationConflict возвращается при пересечении с активным бронированием
	ErrReservationConflict = errors.New("availability: conflicting reservation")

	// ErrCapacityExceeded возвращается, когда участников больше вместимости ресурса
	ErrCapacityExceeded = errors.New("availability: attendee count exceeds resource capacity")

	// ErrInvalidSlotDuration возвращается при недопустимой длительности слота
	ErrInvalidSlotDuration = errors.New("availability: invalid slot duration")

	// ErrInternal возвращается при инфраструктурных ошибках
	ErrInternal = errors.New("availability: internal error")
)

var reasonErrors = map[domain.DecisionReason]error{
	domain.ReasonInvalidInterval:       ErrInvalidInterval,
	domain.ReasonResourceNotFound:      ErrResourceNotFound,
	domain.ReasonResourceInactive:      ErrResourceInactive,
	domain.ReasonScheduleUnavailable:   ErrScheduleUnavailable,
	domain.ReasonOutsideOperatingHours: ErrOutsideOperatingHours,
	domain.ReasonReservationConflict:   ErrReservationConflict,
	domain.ReasonCapacityExceeded:      ErrCapacityExceeded,
}

// UnavailableError отрицательное решение, возвращаемое как ошибка из операций записи.
// errors.Is сопоставляет его с ErrUnavailable и sentinel-ошибкой причины
type UnavailableError struct {
	Decision domain.AvailabilityDecision
}

// NewUnavailableError оборачивает отрицательное решение в ошибку
func NewUnavailableError(decision domain.AvailabilityDecision) *UnavailableError {
	return &UnavailableError{Decision: decision}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("availability: %s: %s", e.Decision.Reason, e.Decision.Message)
}

// Is реализует сопоставление с sentinel-ошибками
func (e *UnavailableError) Is(target error) bool {
	if target == ErrUnavailable {
		return true
	}
	sentinel, ok := reasonErrors[e.Decision.Reason]
	return ok && sentinel == target
}
