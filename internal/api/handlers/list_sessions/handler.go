package list_sessions

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const msgInvalidStatus = "некорректный статус, ожидается active или finished"

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

// Handle GET /api/v1/sessions?status=active|finished
// Без статуса возвращает активные, затем завершенные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var sessions []*domain.ServiceSession
	switch domain.SessionStatus(status) {
	case domain.SessionActive:
		sessions = h.service.Active()
	case domain.SessionFinished:
		sessions = h.service.Finished()
	case "":
		sessions = append(h.service.Active(), h.service.Finished()...)
	default:
		h.logger.Warn("GET /sessions - Invalid status filter: %q", status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	h.logger.Info("GET /sessions - Sessions retrieved: status=%q, count=%d", status, len(sessions))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSessionList(sessions))
}
