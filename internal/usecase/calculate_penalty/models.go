package calculate_penalty

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модель запроса расчета штрафа
// Приоритет политики: Policy, затем тарифный план PlanID, затем значения по умолчанию
type Request struct {
	BaseAmount  int64
	DueDate     time.Time
	PaymentDate time.Time
	PlanID      *int64
	Policy      *domain.PenaltyPolicy
}

// Response результат расчета с примененной политикой
type Response struct {
	Result domain.PenaltyResult
	Policy domain.PenaltyPolicy
}
