package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// WindowInput окно расписания в запросе
type WindowInput struct {
	DayOfWeek int
	StartTime string // HH:MM
	EndTime   string // HH:MM, допускается 24:00
	IsActive  *bool  // по умолчанию true
}

// ToDomain парсит окно. Проверка диапазонов выполняется сервисом
func (w WindowInput) ToDomain() (domain.AvailabilityWindow, error) {
	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("endTime: %w", err)
	}

	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}

	return domain.AvailabilityWindow{
		DayOfWeek: time.Weekday(w.DayOfWeek),
		StartTime: start,
		EndTime:   end,
		IsActive:  active,
	}, nil
}

// ReplaceScheduleRequest запрос на замену расписания ресурса
type ReplaceScheduleRequest struct {
	UserID  int64
	IsAdmin bool
	Windows []WindowInput
}

// WindowResponse окно расписания в ответе
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// ResourceResponse ресурс с расписанием
type ResourceResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	IsActive bool             `json:"isActive"`
	Capacity *int             `json:"capacity,omitempty"`
	Windows  []WindowResponse `json:"windows"`
}

// FromDomainWindows конвертирует окна расписания в DTO
func FromDomainWindows(windows []domain.AvailabilityWindow) []WindowResponse {
	resp := make([]WindowResponse, len(windows))
	for i, w := range windows {
		resp[i] = WindowResponse{
			ID:        w.ID,
			DayOfWeek: int(w.DayOfWeek),
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			IsActive:  w.IsActive,
		}
	}
	return resp
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}
	return &ResourceResponse{
		ID:       r.ID,
		Name:     r.Name,
		IsActive: r.IsActive,
		Capacity: r.Capacity,
		Windows:  FromDomainWindows(r.Windows),
	}
}
