package change_shift_state

import "github.com/m04kA/SMC-StudioService/internal/domain"

type ShiftService interface {
	SetState(staffEmail string, state domain.ShiftState) (*domain.ShiftRecord, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
