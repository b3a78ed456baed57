package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Actor пользователь, от имени которого выполняется операция
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess возвращает true, если пользователь владелец бронирования или администратор
func (a Actor) CanAccess(r *domain.Reservation) bool {
	return a.IsAdmin || r.IsOwnedBy(a.UserID)
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	Actor              Actor
	CancellationReason *string
}

// ListUserReservationsRequest запрос на получение бронирований пользователя
type ListUserReservationsRequest struct {
	Actor  Actor
	UserID int64
	Status *string
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64   `json:"id"`
	ResourceID    int64   `json:"resourceId"`
	UserID        int64   `json:"userId"`
	StartTime     string  `json:"startTime"` // RFC3339
	EndTime       string  `json:"endTime"`   // RFC3339
	Status        string  `json:"status"`
	AttendeeCount int     `json:"attendeeCount"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ResourceID:         r.ResourceID,
		UserID:             r.UserID,
		StartTime:          r.StartTime.Format(time.RFC3339),
		EndTime:            r.EndTime.Format(time.RFC3339),
		Status:             string(r.Status),
		AttendeeCount:      r.AttendeeCount,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelled := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
