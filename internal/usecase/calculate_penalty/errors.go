package calculate_penalty

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_penalty: invalid input data")

	// ErrPlanNotFound возвращается, когда тарифный план не найден
	ErrPlanNotFound = errors.New("calculate_penalty: subscription plan not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_penalty: internal error")
)
