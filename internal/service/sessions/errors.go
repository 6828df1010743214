package sessions

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrRoomOccupied возвращается, когда в комнате уже идет активный сервис
	ErrRoomOccupied = errors.New("sessions: room is occupied by an active session")

	// ErrStaffBusy возвращается, когда у сотрудника уже есть активный сервис
	ErrStaffBusy = errors.New("sessions: staff member already has an active session")
)
