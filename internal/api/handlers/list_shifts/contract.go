package list_shifts

import "github.com/m04kA/SMC-StudioService/internal/domain"

type ShiftService interface {
	List(staffEmail string) []*domain.ShiftRecord
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
