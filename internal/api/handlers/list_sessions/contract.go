package list_sessions

import "github.com/m04kA/SMC-StudioService/internal/domain"

type SessionService interface {
	Active() []*domain.ServiceSession
	Finished() []*domain.ServiceSession
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
