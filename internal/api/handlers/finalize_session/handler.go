package finalize_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	finalizeSession "github.com/m04kA/SMC-StudioService/internal/usecase/finalize_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный ID сервиса"
	msgNotFound           = "активный сервис не найден"
)

type Handler struct {
	useCase FinalizeSessionUseCase
	logger  Logger
}

func NewHandler(useCase FinalizeSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/finalize
// Тело запроса необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req FinalizeSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /sessions/{id}/finalize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, finalizeSession.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/finalize - Invalid session ID: %q", sessionID)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		case errors.Is(err, finalizeSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/finalize - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /sessions/{id}/finalize - Failed to finalize session: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/finalize - Session finalized successfully: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
