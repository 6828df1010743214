package add_session_time

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "активный сервис не найден"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.AdditionalTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /sessions/{id}/time - Validation failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := h.service.AddAdditionalTime(sessionID, &req)
	if !ok {
		h.logger.Warn("POST /sessions/{id}/time - Active session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("POST /sessions/{id}/time - Time added successfully: session_id=%s, label=%q, duration=%d",
		sessionID, req.Label, session.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSession(session))
}
