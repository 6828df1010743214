package finalize_session

import (
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

// Request модель запроса на завершение сервиса
type Request struct {
	SessionID    string // ID активного сервиса
	ClosingNotes string // Заметки при закрытии (опционально)
}

// Response модель ответа с завершенным сервисом
type Response struct {
	Session    *models.SessionResponse // Завершенный сервис
	ShiftState *domain.ShiftState      // Состояние смены после завершения (nil, если смена не открыта)
}
