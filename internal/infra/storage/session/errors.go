package session

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")

	// ErrDecodeItems возвращается, когда JSON колонка с позициями не читается
	ErrDecodeItems = errors.New("session.repository: failed to decode itemized column")
)
