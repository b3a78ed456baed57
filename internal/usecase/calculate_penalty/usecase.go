package calculate_penalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	planRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/plan"
	"github.com/m04kA/SMC-StudioBooking/internal/penalty"
)

// Результаты для метрик
const (
	outcomeCharged = "charged"
	outcomeGrace   = "grace"
	outcomeNone    = "none"
	outcomeInvalid = "invalid"
)

// UseCase use case расчета штрафа за просрочку оплаты
type UseCase struct {
	planRepo      PlanRepository
	defaultPolicy domain.PenaltyPolicy
	metrics       MetricsRecorder
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(planRepo PlanRepository, defaultPolicy domain.PenaltyPolicy, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		planRepo:      planRepo,
		defaultPolicy: defaultPolicy,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет расчет штрафа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Определяем политику
	policy, err := uc.resolvePolicy(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Считаем штраф
	result, err := penalty.Calculate(req.BaseAmount, req.DueDate, req.PaymentDate, &policy)
	if err != nil {
		uc.metrics.RecordPenalty(outcomeInvalid)
		uc.logger.Warn("CalculatePenalty: invalid input: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3. Фиксируем результат
	switch {
	case result.DaysLate > 0:
		uc.metrics.RecordPenalty(outcomeCharged)
	case result.WithinGracePeriod:
		uc.metrics.RecordPenalty(outcomeGrace)
	default:
		uc.metrics.RecordPenalty(outcomeNone)
	}

	uc.logger.Info("CalculatePenalty: base=%d, daysLate=%d, rate=%.4f, amount=%d",
		req.BaseAmount, result.DaysLate, result.PenaltyRate, result.PenaltyAmount)

	return &Response{Result: result, Policy: policy}, nil
}

func (uc *UseCase) resolvePolicy(ctx context.Context, req *Request) (domain.PenaltyPolicy, error) {
	if req.Policy != nil {
		return *req.Policy, nil
	}
	if req.PlanID == nil {
		return uc.defaultPolicy, nil
	}

	plan, err := uc.planRepo.GetByID(ctx, *req.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrPlanNotFound) {
			uc.logger.Warn("CalculatePenalty: plan id=%d not found", *req.PlanID)
			return domain.PenaltyPolicy{}, ErrPlanNotFound
		}
		uc.logger.Error("CalculatePenalty: failed to get plan id=%d: %v", *req.PlanID, err)
		return domain.PenaltyPolicy{}, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
	}

	return plan.PenaltyPolicy(uc.defaultPolicy), nil
}
