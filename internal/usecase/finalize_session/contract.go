package finalize_session

import "github.com/m04kA/SMC-StudioService/internal/domain"

// SessionRegistry интерфейс реестра сервисов
type SessionRegistry interface {
	Finalize(id string, closingNotes string) (*domain.ServiceSession, bool)
}

// ShiftRegistry интерфейс реестра смен
type ShiftRegistry interface {
	OpenFor(staffEmail string) (*domain.ShiftRecord, bool)
	SetState(staffEmail string, state domain.ShiftState) (*domain.ShiftRecord, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
