package ratelimit

import "errors"

var (
	// ErrLimiterUnavailable Redis недоступен или вернул неожиданный ответ
	ErrLimiterUnavailable = errors.New("ratelimit: limiter unavailable")
)
