package check_availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса проверки доступности
type Request struct {
	ResourceID int64
	StartTime  time.Time
	EndTime    time.Time
}

// Response решение о доступности
type Response struct {
	ResourceID int64
	StartTime  time.Time
	EndTime    time.Time
	Decision   domain.AvailabilityDecision
}
