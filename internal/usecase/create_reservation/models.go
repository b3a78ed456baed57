package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID    int64
	UserID        int64
	StartTime     time.Time
	EndTime       time.Time
	AttendeeCount int
	Notes         *string
}

// Response модель созданного бронирования
type Response struct {
	ID            int64
	ResourceID    int64
	UserID        int64
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	AttendeeCount int
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
