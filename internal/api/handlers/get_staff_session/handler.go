package get_staff_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

const msgNotFound = "у сотрудника нет активного сервиса"

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

// Handle GET /api/v1/staff/{email}/session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	session, ok := h.service.ActiveFor(email)
	if !ok {
		h.logger.Info("GET /staff/{email}/session - No active session: staff=%s", email)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSession(session))
}
