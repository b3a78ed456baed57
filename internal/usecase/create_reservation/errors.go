package create_reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrRateLimited возвращается при превышении лимита бронирований пользователя
	ErrRateLimited = errors.New("create_reservation: too many reservation attempts")

	// ErrConcurrentUpdate возвращается при конфликте параллельных транзакций
	// или истечении ожидания блокировки. Запрос можно повторить
	ErrConcurrentUpdate = errors.New("create_reservation: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// RateLimitedError превышение лимита с временем до следующей попытки
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.RetryAfter)
}

// Is сопоставляет ошибку с ErrRateLimited
func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
