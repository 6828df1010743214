package end_shift

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/shifts/models"
)

const msgNotFound = "открытая смена не найдена"

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

// Handle POST /api/v1/staff/{email}/shift/end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	shift, ok := h.service.EndShift(email)
	if !ok {
		h.logger.Warn("POST /staff/{email}/shift/end - No open shift: staff=%s", email)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("POST /staff/{email}/shift/end - Shift ended: shift_id=%s, staff=%s", shift.ID, email)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainShift(shift))
}
