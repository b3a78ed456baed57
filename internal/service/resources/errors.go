package resources

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resources: resource not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение расписания
	ErrAccessDenied = errors.New("resources: access denied")

	// ErrInvalidWindow возвращается при некорректном окне расписания
	ErrInvalidWindow = errors.New("resources: invalid availability window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("resources: internal error")
)
