package get_session_aggregates

import "github.com/m04kA/SMC-StudioService/internal/domain"

type SessionService interface {
	Aggregates() domain.SessionAggregates
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
