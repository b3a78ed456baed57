package check_availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/check_availability"
)

// CheckAvailabilityQuery query параметры запроса
type CheckAvailabilityQuery struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID int64                     `json:"resourceId"`
	StartTime  string                    `json:"startTime"`
	EndTime    string                    `json:"endTime"`
	Decision   handlers.DecisionResponse `json:"decision"`
}

// ToUseCaseRequest парсит границы интервала в формате RFC3339
func (q *CheckAvailabilityQuery) ToUseCaseRequest(resourceID int64) (*checkAvailability.Request, error) {
	start, err := time.Parse(time.RFC3339, q.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, q.End)
	if err != nil {
		return nil, err
	}
	return &checkAvailability.Request{
		ResourceID: resourceID,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ResourceID: resp.ResourceID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Decision:   handlers.FromDecision(resp.Decision),
	}
}
