package domain

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinAttendeeCount            = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxResourceNameLength       = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Roles passed by the gateway in X-User-Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ActiveStatuses statuses that occupy a resource
// Используется в проверке пересечений
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses that never block new reservations
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
