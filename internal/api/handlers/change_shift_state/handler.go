package change_shift_state

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/shifts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidState       = "некорректное состояние смены"
	msgNotFound           = "открытая смена не найдена"
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

// Handle PATCH /api/v1/staff/{email}/shift/state
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var req models.ChangeStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/{email}/shift/state - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("PATCH /staff/{email}/shift/state - Invalid state: staff=%s, error=%v", email, err)
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	shift, ok := h.service.SetState(email, req.ToDomainState())
	if !ok {
		h.logger.Warn("PATCH /staff/{email}/shift/state - No open shift: staff=%s", email)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("PATCH /staff/{email}/shift/state - State changed: shift_id=%s, staff=%s, state=%s",
		shift.ID, email, shift.State)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainShift(shift))
}
