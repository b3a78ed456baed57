package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/pgerrors"
)

// Результаты для метрик
const (
	outcomeCreated     = "created"
	outcomeRejected    = "rejected"
	outcomeRateLimited = "rate_limited"
	outcomeRetryable   = "retryable"
	outcomeError       = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	resolver        AvailabilityResolver
	resourceLocker  ResourceLocker
	reservationRepo ReservationRepository
	txManager       TransactionManager
	limiter         RateLimiter
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver AvailabilityResolver,
	resourceLocker ResourceLocker,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	limiter RateLimiter,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		resourceLocker:  resourceLocker,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		limiter:         limiter,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности повторяется внутри транзакции, выполняющей вставку.
// Строка ресурса блокируется первой, поэтому создания на один ресурс идут последовательно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, resource=%d, start=%s, end=%s",
		req.UserID, req.ResourceID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Лимит попыток пользователя (вне транзакции).
	// Недоступный лимитер не блокирует бронирование (fail-open)
	limit, err := uc.limiter.Allow(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CreateReservation: rate limiter unavailable for user=%d, allowing request: %v", req.UserID, err)
	} else if !limit.Allowed {
		uc.logger.Warn("CreateReservation: user=%d exceeded reservation limit, retry after %s", req.UserID, limit.RetryAfter)
		uc.metrics.RecordReservation(outcomeRateLimited)
		return nil, &RateLimitedError{RetryAfter: limit.RetryAfter}
	}

	var result *domain.Reservation

	// 3. Блокировка ресурса, проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем строку ресурса до конца транзакции
		if err := uc.resourceLocker.LockByID(txCtx, req.ResourceID); err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				return availability.NewUnavailableError(domain.Unavailable(domain.ReasonResourceNotFound,
					fmt.Sprintf("resource %d not found", req.ResourceID)))
			}
			return fmt.Errorf("failed to lock resource: %w", err)
		}

		// 3.2. Полная проверка доступности с блокирующим чтением пересечений
		decision, resource, err := uc.resolver.CheckResource(txCtx, req.ResourceID, req.StartTime, req.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if !decision.Available {
			return availability.NewUnavailableError(decision)
		}

		// 3.3. Вместимость ресурса
		if !resource.AcceptsAttendees(req.AttendeeCount) {
			return availability.NewUnavailableError(domain.Unavailable(domain.ReasonCapacityExceeded,
				fmt.Sprintf("resource capacity is %d, requested %d attendees", *resource.Capacity, req.AttendeeCount)))
		}

		// 3.4. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ResourceID:    req.ResourceID,
			UserID:        req.UserID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        domain.StatusConfirmed,
			AttendeeCount: req.AttendeeCount,
			Notes:         req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classify(req, err)
	}

	uc.metrics.RecordReservation(outcomeCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		ResourceID:    result.ResourceID,
		UserID:        result.UserID,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		AttendeeCount: result.AttendeeCount,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// classify переводит ошибку транзакции в ошибку use case
func (uc *UseCase) classify(req *Request, err error) error {
	var unavailable *availability.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		uc.logger.Warn("CreateReservation: resource=%d unavailable: %s", req.ResourceID, unavailable.Decision.Message)
		uc.metrics.RecordReservation(outcomeRejected)
		return unavailable

	case errors.Is(err, pgerrors.ErrConcurrentUpdate), errors.Is(err, pgerrors.ErrLockTimeout):
		uc.logger.Warn("CreateReservation: concurrent update on resource=%d: %v", req.ResourceID, err)
		uc.metrics.RecordReservation(outcomeRetryable)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)

	default:
		uc.logger.Error("CreateReservation: failed for resource=%d: %v", req.ResourceID, err)
		uc.metrics.RecordReservation(outcomeError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
