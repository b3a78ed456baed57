// Package pgerrors классифицирует ошибки PostgreSQL (lib/pq)
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeCheckViolation       = "23514"
	codeForeignKeyViolation  = "23503"
)

var (
	// ErrConcurrentUpdate конфликт параллельных транзакций (serialization failure или deadlock)
	// Операцию можно повторить
	ErrConcurrentUpdate = errors.New("pgerrors: concurrent update, retry the operation")

	// ErrLockTimeout не удалось дождаться блокировки за lock_timeout
	ErrLockTimeout = errors.New("pgerrors: lock wait timeout")

	// ErrConstraintViolation нарушено ограничение целостности
	ErrConstraintViolation = errors.New("pgerrors: constraint violation")
)

// Code возвращает SQLSTATE ошибки или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsRetryable возвращает true для ошибок, после которых транзакцию можно повторить
func IsRetryable(err error) bool {
	switch Code(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	default:
		return false
	}
}

// Classify возвращает sentinel-ошибку пакета для известных кодов
// Для остальных ошибок возвращает nil
func Classify(err error) error {
	switch Code(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return ErrConcurrentUpdate
	case codeLockNotAvailable:
		return ErrLockTimeout
	case codeUniqueViolation, codeExclusionViolation, codeCheckViolation, codeForeignKeyViolation:
		return ErrConstraintViolation
	default:
		return nil
	}
}
