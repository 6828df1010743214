package add_session_extra

import (
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type SessionService interface {
	AddExtra(id string, req *models.ExtraRequest) (*domain.ServiceSession, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
