package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе получателя
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrDisabled возвращается, когда URL вебхука не настроен
	ErrDisabled = errors.New("notifier client: webhook url is not configured")
)
