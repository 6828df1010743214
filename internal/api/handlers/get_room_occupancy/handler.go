package get_room_occupancy

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type Handler struct {
	service    SessionService
	knownRooms []int
	logger     Logger
}

// NewHandler knownRooms каталог комнат студии, загруженный при старте
func NewHandler(service SessionService, knownRooms []int, logger Logger) *Handler {
	return &Handler{
		service:    service,
		knownRooms: append([]int(nil), knownRooms...),
		logger:     logger,
	}
}

// Handle GET /api/v1/rooms/occupancy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rooms := h.service.Occupancy(h.knownRooms)

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainOccupancy(rooms))
}
