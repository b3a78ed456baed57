package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBooking/internal/service/resources/models"
)

// Service сервис ресурсов и их недельного расписания
type Service struct {
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get получает ресурс с расписанием
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("Get: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Get: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResource(resource), nil
}

// ReplaceWindows заменяет недельное расписание ресурса целиком
// Доступно только администратору. Строка ресурса блокируется на время замены,
// поэтому параллельные создания бронирований видят либо старое, либо новое расписание
func (s *Service) ReplaceWindows(ctx context.Context, id int64, req *models.ReplaceScheduleRequest) ([]models.WindowResponse, error) {
	s.logger.Info("ReplaceWindows: resource=%d, windows=%d, user=%d", id, len(req.Windows), req.UserID)

	// 1. Проверяем права доступа
	if !req.IsAdmin {
		s.logger.Warn("ReplaceWindows: user=%d is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем окна
	windows, err := s.validateWindows(req.Windows)
	if err != nil {
		s.logger.Warn("ReplaceWindows: validation failed for resource=%d: %v", id, err)
		return nil, err
	}

	// 3. Заменяем расписание в транзакции
	var replaced []domain.AvailabilityWindow
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.resourceRepo.LockByID(ctx, id); err != nil {
			return err
		}
		var replaceErr error
		replaced, replaceErr = s.resourceRepo.ReplaceWindows(ctx, id, windows)
		return replaceErr
	})
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("ReplaceWindows: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("ReplaceWindows: failed for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWindows: resource id=%d now has %d windows", id, len(replaced))
	return models.FromDomainWindows(replaced), nil
}

// validateWindows проверяет день недели, формат времени и порядок границ
func (s *Service) validateWindows(input []models.WindowInput) ([]domain.AvailabilityWindow, error) {
	windows := make([]domain.AvailabilityWindow, 0, len(input))
	for i, in := range input {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: window %d: dayOfWeek must be in 0..6, got %d", ErrInvalidWindow, i, in.DayOfWeek)
		}

		w, err := in.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindow, i, err)
		}
		if !w.IsValid() {
			return nil, fmt.Errorf("%w: window %d: startTime %s must be before endTime %s",
				ErrInvalidWindow, i, w.StartTime, w.EndTime)
		}

		windows = append(windows, w)
	}
	return windows, nil
}
