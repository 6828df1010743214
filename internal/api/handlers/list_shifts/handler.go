package list_shifts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/shifts/models"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{email}/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	shifts := h.service.List(email)

	h.logger.Info("GET /staff/{email}/shifts - staff=%s, count=%d", email, len(shifts))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainShiftList(shifts))
}
