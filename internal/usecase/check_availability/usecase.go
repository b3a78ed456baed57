package check_availability

import (
	"context"
	"fmt"
)

// UseCase use case проверки доступности ресурса без бронирования
// Результат рекомендательный: при создании бронирования проверка повторяется в транзакции
type UseCase struct {
	resolver AvailabilityResolver
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver AvailabilityResolver, logger Logger) *UseCase {
	return &UseCase{
		resolver: resolver,
		logger:   logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}

	decision, err := uc.resolver.Check(ctx, req.ResourceID, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CheckAvailability: resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !decision.Available {
		uc.logger.Info("CheckAvailability: resource=%d unavailable: %s", req.ResourceID, decision.Reason)
	}

	return &Response{
		ResourceID: req.ResourceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Decision:   decision,
	}, nil
}
