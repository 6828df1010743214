package start_session

import (
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

// Request модель запроса на начало сервиса
type Request = models.StartSessionRequest

// Response модель ответа с начатым сервисом
type Response struct {
	Session    *models.SessionResponse // Начатый сервис
	ShiftState *domain.ShiftState      // Состояние смены после начала (nil, если смена не открыта)
}
