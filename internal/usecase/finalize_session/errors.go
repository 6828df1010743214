package finalize_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда активный сервис не найден
	ErrSessionNotFound = errors.New("finalize_session: active session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("finalize_session: invalid input data")
)
