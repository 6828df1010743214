package add_session_extra

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

// Handle POST /api/v1/sessions/{sessionId}/extras
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req models.ExtraRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/extras - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /sessions/{id}/extras - Validation failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := h.service.AddExtra(sessionID, &req)
	if !ok {
		h.logger.Warn("POST /sessions/{id}/extras - Active session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("POST /sessions/{id}/extras - Extra added successfully: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSession(session))
}
