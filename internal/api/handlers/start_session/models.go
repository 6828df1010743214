package start_session

import (
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	startSession "github.com/m04kA/SMC-StudioService/internal/usecase/start_session"
)

// StartSessionResponse HTTP response model
type StartSessionResponse struct {
	Session    *models.SessionResponse `json:"session"`
	ShiftState *string                 `json:"shiftState,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *startSession.Response) *StartSessionResponse {
	result := &StartSessionResponse{Session: resp.Session}
	if resp.ShiftState != nil {
		state := string(*resp.ShiftState)
		result.ShiftState = &state
	}
	return result
}
