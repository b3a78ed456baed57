package domain

import "time"

// PenaltyPolicy describes late-payment surcharge parameters.
// Rates are fractions: 0.05 = 5%.
type PenaltyPolicy struct {
	GracePeriodDays int
	BaseRate        float64
	DailyRate       float64
	MaxRate         float64
}

// DefaultPenaltyPolicy returns the system default policy {2, 5%, 0.5%/day, 50%}
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		GracePeriodDays: 2,
		BaseRate:        0.05,
		DailyRate:       0.005,
		MaxRate:         0.50,
	}
}

// PenaltyResult is the computed surcharge
type PenaltyResult struct {
	PenaltyAmount     int64
	PenaltyRate       float64
	DaysLate          int
	WithinGracePeriod bool
}

// SubscriptionPlan is a billing plan that may override the penalty policy.
// NULL columns fall back to the system defaults field by field.
type SubscriptionPlan struct {
	ID                     int64
	Name                   string
	PenaltyGracePeriodDays *int
	PenaltyBaseRate        *float64
	PenaltyDailyRate       *float64
	PenaltyMaxRate         *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PenaltyPolicy merges the plan overrides into base
func (p *SubscriptionPlan) PenaltyPolicy(base PenaltyPolicy) PenaltyPolicy {
	if p.PenaltyGracePeriodDays != nil {
		base.GracePeriodDays = *p.PenaltyGracePeriodDays
	}
	if p.PenaltyBaseRate != nil {
		base.BaseRate = *p.PenaltyBaseRate
	}
	if p.PenaltyDailyRate != nil {
		base.DailyRate = *p.PenaltyDailyRate
	}
	if p.PenaltyMaxRate != nil {
		base.MaxRate = *p.PenaltyMaxRate
	}
	return base
}
