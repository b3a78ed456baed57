package resources

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	LockByID(ctx context.Context, id int64) error
	ReplaceWindows(ctx context.Context, resourceID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
