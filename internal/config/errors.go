package config

import "errors"

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)
