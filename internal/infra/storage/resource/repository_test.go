package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/migrations"
	"github.com/m04kA/SMC-StudioBooking/internal/pgtest"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func window(day time.Weekday, start, end string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		IsActive:  true,
	}
}

func TestRepository(t *testing.T) {
	db := pgtest.New(t)
	require.NoError(t, migrations.Run(db))

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	txMgr := txmanager.NewTransactionManager(wrapped)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Resource{
		Name:     "Studio A",
		IsActive: true,
		Capacity: ptr.Ptr(4),
		Windows: []domain.AvailabilityWindow{
			window(time.Monday, "14:00", "24:00"),
			window(time.Monday, "09:00", "12:00"),
		},
	})
	require.NoError(t, err)

	t.Run("GetByID returns ordered windows", func(t *testing.T) {
		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, "Studio A", got.Name)
		assert.Equal(t, 4, *got.Capacity)
		require.Len(t, got.Windows, 2)
		assert.Equal(t, "09:00", got.Windows[0].StartTime.String())
		assert.Equal(t, "24:00", got.Windows[1].EndTime.String())
		assert.Equal(t, time.Monday, got.Windows[1].DayOfWeek)
	})

	t.Run("ReplaceWindows in transaction", func(t *testing.T) {
		err := txMgr.Do(ctx, func(ctx context.Context) error {
			if err := repo.LockByID(ctx, created.ID); err != nil {
				return err
			}
			_, err := repo.ReplaceWindows(ctx, created.ID, []domain.AvailabilityWindow{
				window(time.Saturday, "10:00", "16:00"),
			})
			return err
		})
		require.NoError(t, err)

		windows, err := repo.GetWindows(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Saturday, windows[0].DayOfWeek)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := repo.GetByID(ctx, created.ID+1000)
		assert.ErrorIs(t, err, ErrResourceNotFound)

		err = txMgr.Do(ctx, func(ctx context.Context) error {
			return repo.LockByID(ctx, created.ID+1000)
		})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}
