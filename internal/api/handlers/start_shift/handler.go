package start_shift

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/shifts/models"
)

const msgAlreadyOpen = "у сотрудника уже есть открытая смена"

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

// Handle POST /api/v1/staff/{email}/shift/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	shift, ok := h.service.StartShift(email)
	if !ok {
		h.logger.Warn("POST /staff/{email}/shift/start - Shift already open: staff=%s", email)
		handlers.RespondConflict(w, msgAlreadyOpen)
		return
	}

	h.logger.Info("POST /staff/{email}/shift/start - Shift started: shift_id=%s, staff=%s", shift.ID, email)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainShift(shift))
}
