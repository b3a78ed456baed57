package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/pgtest"
)

func TestRun(t *testing.T) {
	db := pgtest.New(t)

	require.NoError(t, Run(db))

	for _, table := range []string{"resources", "availability_windows", "reservations", "subscription_plans"} {
		var exists bool
		err := db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public' AND indexname = 'idx_reservations_resource_active'
		)`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)

	version, dirty, err := Version(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestRun_Idempotent(t *testing.T) {
	db := pgtest.New(t)

	require.NoError(t, Run(db))
	require.NoError(t, Run(db))
}

func TestSchema_RejectsInvalidInterval(t *testing.T) {
	db := pgtest.New(t)
	require.NoError(t, Run(db))

	var resourceID int64
	require.NoError(t, db.QueryRow(`INSERT INTO resources (name) VALUES ('Studio A') RETURNING id`).Scan(&resourceID))

	_, err := db.Exec(`
		INSERT INTO reservations (resource_id, user_id, start_time, end_time)
		VALUES ($1, 1, '2026-03-02T11:00:00Z', '2026-03-02T10:00:00Z')`, resourceID)
	assert.Error(t, err)

	_, err = db.Exec(`
		INSERT INTO availability_windows (resource_id, day_of_week, start_time, end_time)
		VALUES ($1, 7, '09:00', '18:00')`, resourceID)
	assert.Error(t, err)
}
