package penalty

import "errors"

var (
	// ErrNegativeAmount базовая сумма отрицательная
	ErrNegativeAmount = errors.New("penalty: base amount must not be negative")

	// ErrInvalidDate дата не задана
	ErrInvalidDate = errors.New("penalty: due date and payment date are required")

	// ErrInvalidPolicy политика содержит отрицательные значения или max < base
	ErrInvalidPolicy = errors.New("penalty: invalid policy")
)
