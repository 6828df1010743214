package start_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	startSession "github.com/m04kA/SMC-StudioService/internal/usecase/start_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сервиса"
	msgRoomOccupied       = "комната занята другим сервисом"
	msgStaffBusy          = "у сотрудника уже есть активный сервис"
)

type Handler struct {
	useCase StartSessionUseCase
	logger  Logger
}

func NewHandler(useCase StartSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, startSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: staff=%s, error=%v", req.StaffEmail, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, startSession.ErrRoomOccupied):
			h.logger.Warn("POST /sessions - Room occupied: staff=%s, room=%v", req.StaffEmail, req.RoomNumber)
			handlers.RespondConflict(w, msgRoomOccupied)

		case errors.Is(err, startSession.ErrStaffBusy):
			h.logger.Warn("POST /sessions - Staff busy: staff=%s", req.StaffEmail)
			handlers.RespondConflict(w, msgStaffBusy)

		default:
			h.logger.Error("POST /sessions - Failed to start session: staff=%s, error=%v", req.StaffEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session started successfully: session_id=%s, staff=%s",
		result.Session.ID, req.StaffEmail)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
