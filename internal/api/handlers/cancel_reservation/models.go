package cancel_reservation

import (
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(user middleware.User) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		Actor:              models.Actor{UserID: user.ID, IsAdmin: user.IsAdmin()},
		CancellationReason: r.CancellationReason,
	}
}
