package get_staff_session

import "github.com/m04kA/SMC-StudioService/internal/domain"

type SessionService interface {
	ActiveFor(staffEmail string) (*domain.ServiceSession, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
