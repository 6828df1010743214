package start_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

// UseCase use case для начала сервиса
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

// Execute начинает сервис и переводит открытую смену сотрудника в состояние in_service
// Реестры не знают друг о друге, поэтому согласование выполняется здесь
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	uc.logger.Info("StartSession: staff=%s, service=%s, location=%s, category=%q",
		req.StaffEmail, req.ServiceType, req.Location, req.DurationCategory)

	// 1. Начинаем сервис (валидация и проверка занятости внутри реестра)
	session, err := uc.sessions.Start(req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, sessions.ErrRoomOccupied):
			return nil, ErrRoomOccupied
		case errors.Is(err, sessions.ErrStaffBusy):
			return nil, ErrStaffBusy
		default:
			uc.logger.Error("StartSession: failed to start session: %v", err)
			return nil, fmt.Errorf("%w: failed to start session: %v", ErrInternal, err)
		}
	}

	resp := &Response{Session: models.FromDomainSession(session)}

	// 2. Переводим открытую смену в in_service
	shift, ok := uc.shifts.OpenFor(session.StaffEmail)
	if !ok {
		uc.logger.Warn("StartSession: staff=%s has no open shift, shift state unchanged", session.StaffEmail)
		return resp, nil
	}

	if shift.State != domain.ShiftInService {
		if updated, ok := uc.shifts.SetState(session.StaffEmail, domain.ShiftInService); ok {
			shift = updated
		}
	}
	resp.ShiftState = &shift.State

	uc.logger.Info("StartSession: started session id=%s, shift state=%s", session.ID, shift.State)
	return resp, nil
}
