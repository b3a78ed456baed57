package handlers

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// ConflictResponse бронирование, блокирующее запрошенный интервал
type ConflictResponse struct {
	ReservationID int64  `json:"reservationId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// WindowBoundsResponse границы ближайшего окна расписания
type WindowBoundsResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DecisionResponse решение о доступности
type DecisionResponse struct {
	Available     bool                  `json:"available"`
	Reason        string                `json:"reason"`
	Message       string                `json:"message"`
	Conflict      *ConflictResponse     `json:"conflict,omitempty"`
	NearestWindow *WindowBoundsResponse `json:"nearestWindow,omitempty"`
}

// FromDecision конвертирует решение в DTO
func FromDecision(d domain.AvailabilityDecision) DecisionResponse {
	resp := DecisionResponse{
		Available: d.Available,
		Reason:    string(d.Reason),
		Message:   d.Message,
	}
	if d.Conflict != nil {
		resp.Conflict = &ConflictResponse{
			ReservationID: d.Conflict.ReservationID,
			StartTime:     d.Conflict.StartTime.Format(time.RFC3339),
			EndTime:       d.Conflict.EndTime.Format(time.RFC3339),
		}
	}
	if d.NearestWindow != nil {
		resp.NearestWindow = &WindowBoundsResponse{
			StartTime: d.NearestWindow.StartTime.String(),
			EndTime:   d.NearestWindow.EndTime.String(),
		}
	}
	return resp
}

// DecisionStatus HTTP статус для отрицательного решения при записи
func DecisionStatus(reason domain.DecisionReason) int {
	switch reason {
	case domain.ReasonInvalidInterval:
		return http.StatusBadRequest
	case domain.ReasonResourceNotFound:
		return http.StatusNotFound
	case domain.ReasonReservationConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
