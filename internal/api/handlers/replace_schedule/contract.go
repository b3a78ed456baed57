package replace_schedule

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/resources/models"
)

type ResourceService interface {
	ReplaceWindows(ctx context.Context, id int64, req *models.ReplaceScheduleRequest) ([]models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
