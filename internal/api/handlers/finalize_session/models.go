package finalize_session

import (
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	finalizeSession "github.com/m04kA/SMC-StudioService/internal/usecase/finalize_session"
)

// FinalizeSessionRequest HTTP request model
type FinalizeSessionRequest struct {
	ClosingNotes *string `json:"closingNotes,omitempty"`
}

// FinalizeSessionResponse HTTP response model
type FinalizeSessionResponse struct {
	Session    *models.SessionResponse `json:"session"`
	ShiftState *string                 `json:"shiftState,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *FinalizeSessionRequest) ToUseCaseRequest(sessionID string) *finalizeSession.Request {
	notes := ""
	if r.ClosingNotes != nil {
		notes = *r.ClosingNotes
	}
	return &finalizeSession.Request{
		SessionID:    sessionID,
		ClosingNotes: notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *finalizeSession.Response) *FinalizeSessionResponse {
	result := &FinalizeSessionResponse{Session: resp.Session}
	if resp.ShiftState != nil {
		state := string(*resp.ShiftState)
		result.ShiftState = &state
	}
	return result
}
