package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID    int64   `json:"resourceId" validate:"required,gt=0"`
	StartTime     string  `json:"startTime" validate:"required"` // RFC3339
	EndTime       string  `json:"endTime" validate:"required"`   // RFC3339
	AttendeeCount *int    `json:"attendeeCount,omitempty" validate:"omitempty,gte=1"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64   `json:"id"`
	ResourceID    int64   `json:"resourceId"`
	UserID        int64   `json:"userId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	AttendeeCount int     `json:"attendeeCount"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	attendees := domain.MinAttendeeCount
	if r.AttendeeCount != nil {
		attendees = *r.AttendeeCount
	}

	return &createReservation.Request{
		ResourceID:    r.ResourceID,
		UserID:        userID,
		StartTime:     start,
		EndTime:       end,
		AttendeeCount: attendees,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		ResourceID:    resp.ResourceID,
		UserID:        resp.UserID,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		AttendeeCount: resp.AttendeeCount,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
