package edit_finished_session

import (
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type SessionService interface {
	EditFinished(id string, req *models.EditSessionRequest) (*domain.ServiceSession, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
