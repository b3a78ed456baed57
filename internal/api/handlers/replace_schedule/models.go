package replace_schedule

import (
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/resources/models"
)

// ReplaceScheduleRequest HTTP request model
type ReplaceScheduleRequest struct {
	Windows []WindowRequest `json:"windows" validate:"dive"`
}

// WindowRequest окно расписания
type WindowRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ResourceID int64                   `json:"resourceId"`
	Windows    []models.WindowResponse `json:"windows"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReplaceScheduleRequest) ToServiceRequest(user middleware.User) *models.ReplaceScheduleRequest {
	windows := make([]models.WindowInput, len(r.Windows))
	for i, w := range r.Windows {
		windows[i] = models.WindowInput{
			DayOfWeek: *w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			IsActive:  w.IsActive,
		}
	}

	return &models.ReplaceScheduleRequest{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin(),
		Windows: windows,
	}
}
