package get_shift_stats

import "github.com/m04kA/SMC-StudioService/internal/domain"

type ShiftService interface {
	StatsFor(staffEmail string) domain.ShiftStats
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
