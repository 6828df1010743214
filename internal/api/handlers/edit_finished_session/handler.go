package edit_finished_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "завершенный сервис не найден"
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

// Handle PUT /api/v1/sessions/{sessionId}/admin-edit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.EditSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/admin-edit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("PUT /sessions/{id}/admin-edit - Validation failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := h.service.EditFinished(sessionID, &req)
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/admin-edit - Finished session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("PUT /sessions/{id}/admin-edit - Session edited successfully: session_id=%s, edits=%d",
		sessionID, len(session.EditHistory))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSession(session))
}
