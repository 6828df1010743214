package end_shift

import "github.com/m04kA/SMC-StudioService/internal/domain"

type ShiftService interface {
	EndShift(staffEmail string) (*domain.ShiftRecord, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
