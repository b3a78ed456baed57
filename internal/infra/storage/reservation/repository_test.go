package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/migrations"
	"github.com/m04kA/SMC-StudioBooking/internal/pgtest"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

func setup(t *testing.T) (*sql.DB, *Repository, int64) {
	t.Helper()

	db := pgtest.New(t)
	require.NoError(t, migrations.Run(db))

	var resourceID int64
	require.NoError(t, db.QueryRow(`INSERT INTO resources (name) VALUES ('Studio A') RETURNING id`).Scan(&resourceID))

	return db, NewRepository(db), resourceID
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestRepository_CreateAndGet(t *testing.T) {
	_, repo, resourceID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Reservation{
		ResourceID:    resourceID,
		UserID:        7,
		StartTime:     at(10, 0),
		EndTime:       at(11, 0),
		Status:        domain.StatusConfirmed,
		AttendeeCount: 2,
		Notes:         ptr.Ptr("drum kit"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.StartTime.Equal(at(10, 0)))
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "drum kit", *got.Notes)
	assert.Nil(t, got.CancelledAt)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_FindOverlapping(t *testing.T) {
	_, repo, resourceID := setup(t)
	ctx := context.Background()

	existing, err := repo.Create(ctx, &domain.Reservation{
		ResourceID: resourceID, UserID: 1, StartTime: at(10, 0), EndTime: at(11, 0),
		Status: domain.StatusConfirmed, AttendeeCount: 1,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Reservation{
		ResourceID: resourceID, UserID: 1, StartTime: at(12, 0), EndTime: at(13, 0),
		Status: domain.StatusCancelled, AttendeeCount: 1,
	})
	require.NoError(t, err)

	t.Run("adjacent interval does not overlap", func(t *testing.T) {
		found, err := repo.FindOverlapping(ctx, resourceID, at(11, 0), at(12, 0))
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("partial overlap", func(t *testing.T) {
		found, err := repo.FindOverlapping(ctx, resourceID, at(10, 30), at(11, 30))
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, existing.ID, found[0].ID)
	})

	t.Run("cancelled reservation is ignored", func(t *testing.T) {
		found, err := repo.FindOverlapping(ctx, resourceID, at(12, 0), at(13, 0))
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestRepository_Cancel(t *testing.T) {
	_, repo, resourceID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Reservation{
		ResourceID: resourceID, UserID: 3, StartTime: at(9, 0), EndTime: at(10, 0),
		Status: domain.StatusPending, AttendeeCount: 1,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Cancel(ctx, created.ID, ptr.Ptr("changed plans")))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, "changed plans", *got.CancellationReason)
	assert.NotNil(t, got.CancelledAt)

	assert.ErrorIs(t, repo.Cancel(ctx, created.ID, nil), ErrCannotCancel)

	list, err := repo.GetByUserID(ctx, 3, ptr.Ptr(domain.StatusCancelled))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
