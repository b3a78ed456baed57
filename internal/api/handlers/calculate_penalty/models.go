package calculate_penalty

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	calculatePenalty "github.com/m04kA/SMC-StudioBooking/internal/usecase/calculate_penalty"
)

// CalculatePenaltyRequest HTTP request model
type CalculatePenaltyRequest struct {
	BaseAmount  *int64         `json:"baseAmount" validate:"required,gte=0"`
	DueDate     string         `json:"dueDate" validate:"required,datetime=2006-01-02"`
	PaymentDate string         `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	PlanID      *int64         `json:"planId,omitempty" validate:"omitempty,gt=0"`
	Policy      *PolicyRequest `json:"policy,omitempty"`
}

// PolicyRequest явная политика штрафа
type PolicyRequest struct {
	GracePeriodDays int     `json:"gracePeriodDays" validate:"gte=0"`
	BaseRate        float64 `json:"baseRate" validate:"gte=0"`
	DailyRate       float64 `json:"dailyRate" validate:"gte=0"`
	MaxRate         float64 `json:"maxRate" validate:"gtefield=BaseRate"`
}

// PolicyResponse примененная политика
type PolicyResponse struct {
	GracePeriodDays int     `json:"gracePeriodDays"`
	BaseRate        float64 `json:"baseRate"`
	DailyRate       float64 `json:"dailyRate"`
	MaxRate         float64 `json:"maxRate"`
}

// PenaltyResponse HTTP response model
type PenaltyResponse struct {
	PenaltyAmount     int64          `json:"penaltyAmount"`
	PenaltyRate       float64        `json:"penaltyRate"`
	DaysLate          int            `json:"daysLate"`
	WithinGracePeriod bool           `json:"withinGracePeriod"`
	Policy            PolicyResponse `json:"policy"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CalculatePenaltyRequest) ToUseCaseRequest() (*calculatePenalty.Request, error) {
	dueDate, err := time.Parse(domain.DateFormat, r.DueDate)
	if err != nil {
		return nil, err
	}
	paymentDate, err := time.Parse(domain.DateFormat, r.PaymentDate)
	if err != nil {
		return nil, err
	}

	req := &calculatePenalty.Request{
		BaseAmount:  *r.BaseAmount,
		DueDate:     dueDate,
		PaymentDate: paymentDate,
		PlanID:      r.PlanID,
	}
	if r.Policy != nil {
		req.Policy = &domain.PenaltyPolicy{
			GracePeriodDays: r.Policy.GracePeriodDays,
			BaseRate:        r.Policy.BaseRate,
			DailyRate:       r.Policy.DailyRate,
			MaxRate:         r.Policy.MaxRate,
		}
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculatePenalty.Response) *PenaltyResponse {
	return &PenaltyResponse{
		PenaltyAmount:     resp.Result.PenaltyAmount,
		PenaltyRate:       resp.Result.PenaltyRate,
		DaysLate:          resp.Result.DaysLate,
		WithinGracePeriod: resp.Result.WithinGracePeriod,
		Policy: PolicyResponse{
			GracePeriodDays: resp.Policy.GracePeriodDays,
			BaseRate:        resp.Policy.BaseRate,
			DailyRate:       resp.Policy.DailyRate,
			MaxRate:         resp.Policy.MaxRate,
		},
	}
}
