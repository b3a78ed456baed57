package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/pgerrors"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	commitErr  error
	committed  bool
	rolledBack bool
	execs      []string
}

func (t *fakeTx) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	t.execs = append(t.execs, query)
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *fakeTx
	opts  []*sql.TxOptions
	err   error
	calls int
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.calls++
	b.opts = append(b.opts, opts)
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestTransactionManager_Do(t *testing.T) {
	t.Run("фиксирует транзакцию при успехе", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		err := m.Do(context.Background(), func(ctx context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(ctx))
			return nil
		})

		require.NoError(t, err)
		assert.True(t, db.tx.committed)
		assert.False(t, db.tx.rolledBack)
		assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
	})

	t.Run("откатывает транзакцию при ошибке", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db)
		fnErr := errors.New("business error")

		err := m.Do(context.Background(), func(ctx context.Context) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		assert.False(t, db.tx.committed)
		assert.True(t, db.tx.rolledBack)
	})

	t.Run("откатывает транзакцию при панике", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		assert.Panics(t, func() {
			_ = m.Do(context.Background(), func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.True(t, db.tx.rolledBack)
	})

	t.Run("вложенный вызов использует внешнюю транзакцию", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		err := m.Do(context.Background(), func(ctx context.Context) error {
			return m.DoSerializable(ctx, func(ctx context.Context) error {
				return nil
			})
		})

		require.NoError(t, err)
		assert.Equal(t, 1, db.calls)
	})

	t.Run("ошибка начала транзакции", func(t *testing.T) {
		db := &fakeBeginner{err: errors.New("connection refused")}
		m := NewTransactionManager(db)

		err := m.Do(context.Background(), func(ctx context.Context) error {
			t.Fatal("fn must not be called")
			return nil
		})

		assert.ErrorIs(t, err, ErrBeginTx)
	})

	t.Run("serialization failure при commit", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}
		m := NewTransactionManager(db, WithIsolation(sql.LevelSerializable))

		err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, pgerrors.ErrConcurrentUpdate)
		assert.ErrorIs(t, err, ErrCommitTx)
		assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	})

	t.Run("устанавливает lock_timeout", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db, WithLockTimeout(2*time.Second))

		err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, []string{"SET LOCAL lock_timeout = '2000ms'"}, db.tx.execs)
	})
}

func TestTransactionManager_DoReadOnly(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	require.NoError(t, m.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil }))
	assert.True(t, db.opts[0].ReadOnly)
}

func TestParseIsolation(t *testing.T) {
	level, err := ParseIsolation("serializable")
	require.NoError(t, err)
	assert.Equal(t, sql.LevelSerializable, level)

	level, err = ParseIsolation("")
	require.NoError(t, err)
	assert.Equal(t, sql.LevelReadCommitted, level)

	_, err = ParseIsolation("chaos")
	assert.Error(t, err)
}
