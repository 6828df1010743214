package finalize_session

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

// UseCase use case для завершения сервиса
type UseCase struct {
	sessions SessionRegistry
	shifts   ShiftRegistry
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionRegistry,
	shifts ShiftRegistry,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions: sessions,
		shifts:   shifts,
		logger:   logger,
	}
}

// Execute завершает сервис и возвращает открытую смену сотрудника в состояние available
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	uc.logger.Info("FinalizeSession: session id=%s", req.SessionID)

	// 1. Завершаем сервис
	session, ok := uc.sessions.Finalize(req.SessionID, req.ClosingNotes)
	if !ok {
		uc.logger.Warn("FinalizeSession: active session id=%s not found", req.SessionID)
		return nil, ErrSessionNotFound
	}

	resp := &Response{Session: models.FromDomainSession(session)}

	// 2. Возвращаем открытую смену в available
	shift, ok := uc.shifts.OpenFor(session.StaffEmail)
	if !ok {
		uc.logger.Warn("FinalizeSession: staff=%s has no open shift, shift state unchanged", session.StaffEmail)
		return resp, nil
	}

	if shift.State != domain.ShiftAvailable {
		if updated, ok := uc.shifts.SetState(session.StaffEmail, domain.ShiftAvailable); ok {
			shift = updated
		}
	}
	resp.ShiftState = &shift.State

	uc.logger.Info("FinalizeSession: finished session id=%s, total=%s, shift state=%s",
		session.ID, session.Total(), shift.State)
	return resp, nil
}
