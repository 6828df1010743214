package start_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("start_session: invalid input data")

	// ErrRoomOccupied возвращается, когда комната занята другим активным сервисом
	ErrRoomOccupied = errors.New("start_session: room is occupied")

	// ErrStaffBusy возвращается, когда у сотрудника уже есть активный сервис
	ErrStaffBusy = errors.New("start_session: staff member already has an active session")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_session: internal error")
)
