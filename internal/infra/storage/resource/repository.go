package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

// Repository репозиторий ресурсов и их недельного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ресурс вместе с окнами расписания
// Окна вставляются в той же транзакции, если она передана в контексте
func (r *Repository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns("name", "is_active", "capacity").
		Values(resource.Name, resource.IsActive, resource.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, wrap(ErrExecQuery, "Create - execute insert", err)
	}

	if len(resource.Windows) > 0 {
		windows, err := r.insertWindows(ctx, resource.ID, resource.Windows)
		if err != nil {
			return nil, err
		}
		resource.Windows = windows
	}

	return resource, nil
}

// GetByID получает ресурс вместе со всеми окнами расписания
// Окна упорядочены по (day_of_week, start_time)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"capacity",
		"created_at",
		"updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var resource domain.Resource
	var capacity sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&resource.ID,
		&resource.Name,
		&resource.IsActive,
		&capacity,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, wrap(ErrScanRow, "GetByID - scan resource", err)
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		resource.Capacity = &c
	}

	windows, err := r.GetWindows(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.Windows = windows

	return &resource, nil
}

// GetWindows получает все окна расписания ресурса (включая неактивные)
func (r *Repository) GetWindows(ctx context.Context, resourceID int64) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
	).
		From("availability_windows").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(ErrExecQuery, "GetWindows - execute query", err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(
			&w.ID,
			&w.ResourceID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.IsActive,
		); err != nil {
			return nil, wrap(ErrScanRow, "GetWindows - scan window", err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(ErrScanRow, "GetWindows - rows error", err)
	}

	return windows, nil
}

// LockByID блокирует строку ресурса до конца транзакции (SELECT ... FOR UPDATE)
// Все создания бронирований одного ресурса выполняются последовательно
func (r *Repository) LockByID(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockByID - build select query: %v", ErrBuildQuery, err)
	}

	var lockedID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrResourceNotFound
	}
	if err != nil {
		return wrap(ErrExecQuery, "LockByID - lock resource", err)
	}

	return nil
}

// ReplaceWindows заменяет расписание ресурса целиком
// Должен вызываться внутри транзакции вместе с LockByID
func (r *Repository) ReplaceWindows(ctx context.Context, resourceID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, wrap(ErrExecQuery, "ReplaceWindows - delete windows", err)
	}

	if len(windows) == 0 {
		return []domain.AvailabilityWindow{}, nil
	}

	return r.insertWindows(ctx, resourceID, windows)
}

func (r *Repository) insertWindows(ctx context.Context, resourceID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability_windows").
		Columns("resource_id", "day_of_week", "start_time", "end_time", "is_active")

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(resourceID, int(w.DayOfWeek), w.StartTime, w.EndTime, w.IsActive)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insertWindows - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(ErrExecQuery, "insertWindows - execute insert", err)
	}
	defer rows.Close()

	// PostgreSQL возвращает RETURNING в порядке VALUES
	inserted := make([]domain.AvailabilityWindow, 0, len(windows))
	for i := 0; rows.Next(); i++ {
		w := windows[i]
		if err := rows.Scan(&w.ID); err != nil {
			return nil, wrap(ErrScanRow, "insertWindows - scan id", err)
		}
		w.ResourceID = resourceID
		inserted = append(inserted, w)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(ErrScanRow, "insertWindows - rows error", err)
	}

	return inserted, nil
}

func wrap(sentinel error, op string, err error) error {
	if classified := pgerrors.Classify(err); classified != nil {
		return fmt.Errorf("%w: %w: %s: %v", classified, sentinel, op, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}
