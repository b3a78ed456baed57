// Package penalty расчет штрафа за просрочку оплаты.
// Чистые функции без состояния, безопасны для конкурентного вызова.
package penalty

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const hoursPerDay = 24

// Calculate вычисляет штраф за оплату paymentDate при сроке dueDate.
// Время суток отбрасывается, даты сравниваются по календарному дню.
// policy == nil - используется domain.DefaultPenaltyPolicy.
func Calculate(baseAmount int64, dueDate, paymentDate time.Time, policy *domain.PenaltyPolicy) (domain.PenaltyResult, error) {
	if baseAmount < 0 {
		return domain.PenaltyResult{}, fmt.Errorf("%w: %d", ErrNegativeAmount, baseAmount)
	}
	if dueDate.IsZero() || paymentDate.IsZero() {
		return domain.PenaltyResult{}, ErrInvalidDate
	}

	p := domain.DefaultPenaltyPolicy()
	if policy != nil {
		p = *policy
	}
	if err := ValidatePolicy(p); err != nil {
		return domain.PenaltyResult{}, err
	}

	// 1. Полные календарные дни просрочки
	totalDaysLate := max(0, civilDaysBetween(dueDate, paymentDate))

	// 2. Дни сверх льготного периода (граница включительно)
	daysLate := max(0, totalDaysLate-p.GracePeriodDays)

	// 3. Оплата после срока, но в пределах льготного периода
	withinGrace := totalDaysLate > 0 && daysLate == 0

	if daysLate == 0 {
		return domain.PenaltyResult{WithinGracePeriod: withinGrace}, nil
	}

	// 4. Ставка ограничивается до округления суммы
	rate := math.Min(p.BaseRate+float64(daysLate)*p.DailyRate, p.MaxRate)
	amount := int64(math.Round(float64(baseAmount) * rate))

	return domain.PenaltyResult{
		PenaltyAmount:     amount,
		PenaltyRate:       rate,
		DaysLate:          daysLate,
		WithinGracePeriod: withinGrace,
	}, nil
}

// ValidatePolicy проверяет, что значения неотрицательны и MaxRate >= BaseRate
func ValidatePolicy(p domain.PenaltyPolicy) error {
	if p.GracePeriodDays < 0 || p.BaseRate < 0 || p.DailyRate < 0 || p.MaxRate < 0 {
		return fmt.Errorf("%w: negative value in %+v", ErrInvalidPolicy, p)
	}
	if p.MaxRate < p.BaseRate {
		return fmt.Errorf("%w: max rate %v is below base rate %v", ErrInvalidPolicy, p.MaxRate, p.BaseRate)
	}
	if math.IsNaN(p.BaseRate) || math.IsNaN(p.DailyRate) || math.IsNaN(p.MaxRate) {
		return fmt.Errorf("%w: NaN rate", ErrInvalidPolicy)
	}
	return nil
}

// civilDaysBetween число календарных дней от from до to.
// Каждая дата приводится к полуночи UTC своего календарного дня.
func civilDaysBetween(from, to time.Time) int {
	return int(civilMidnight(to).Sub(civilMidnight(from)).Hours() / hoursPerDay)
}

func civilMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
