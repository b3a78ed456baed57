package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

// Repository репозиторий тарифных планов (только политика штрафов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифных планов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тарифный план
func (r *Repository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (*domain.SubscriptionPlan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("subscription_plans").
		Columns(
			"name",
			"penalty_grace_period_days",
			"penalty_base_rate",
			"penalty_daily_rate",
			"penalty_max_rate",
		).
		Values(
			plan.Name,
			plan.PenaltyGracePeriodDays,
			plan.PenaltyBaseRate,
			plan.PenaltyDailyRate,
			plan.PenaltyMaxRate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return plan, nil
}

// GetByID получает тарифный план по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SubscriptionPlan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"penalty_grace_period_days",
		"penalty_base_rate",
		"penalty_daily_rate",
		"penalty_max_rate",
		"created_at",
		"updated_at",
	).
		From("subscription_plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var plan domain.SubscriptionPlan
	var grace sql.NullInt64
	var baseRate, dailyRate, maxRate sql.NullFloat64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&plan.Name,
		&grace,
		&baseRate,
		&dailyRate,
		&maxRate,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan plan: %v", ErrScanRow, err)
	}

	if grace.Valid {
		g := int(grace.Int64)
		plan.PenaltyGracePeriodDays = &g
	}
	plan.PenaltyBaseRate = nullFloat(baseRate)
	plan.PenaltyDailyRate = nullFloat(dailyRate)
	plan.PenaltyMaxRate = nullFloat(maxRate)

	return &plan, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
