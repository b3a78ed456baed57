// Package txmanager - менеджер транзакций, передающий транзакцию через context
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/pgerrors"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSetLockTimeout ошибка установки lock_timeout
	ErrSetLockTimeout = errors.New("txmanager: failed to set lock timeout")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithIsolation задает уровень изоляции для Do
func WithIsolation(level sql.IsolationLevel) Option {
	return func(m *TransactionManager) {
		m.isolation = level
	}
}

// WithLockTimeout задает SET LOCAL lock_timeout для каждой транзакции
func WithLockTimeout(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.lockTimeout = d
	}
}

// TransactionManager выполняет функции внутри транзакции
type TransactionManager struct {
	db          TxBeginner
	isolation   sql.IsolationLevel
	lockTimeout time.Duration
}

// NewTransactionManager создает менеджер транзакций. По умолчанию READ COMMITTED
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:        db,
		isolation: sql.LevelReadCommitted,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Isolation возвращает уровень изоляции по умолчанию
func (m *TransactionManager) Isolation() sql.IsolationLevel {
	return m.isolation
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: m.isolation}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: m.isolation, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if m.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			return fmt.Errorf("%w: %v", ErrSetLockTimeout, execErr)
		}
	}

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		if classified := pgerrors.Classify(err); classified != nil {
			return fmt.Errorf("%w: %w: %v", classified, ErrCommitTx, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// ParseIsolation переводит строку конфигурации в sql.IsolationLevel
func ParseIsolation(s string) (sql.IsolationLevel, error) {
	switch s {
	case "", "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("txmanager: unknown isolation level %q", s)
	}
}
