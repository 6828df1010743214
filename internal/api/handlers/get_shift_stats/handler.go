package get_shift_stats

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

// Handle GET /api/v1/staff/{email}/shift/stats
// Статистика считается только по закрытым сменам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	stats := h.service.StatsFor(email)

	h.logger.Info("GET /staff/{email}/shift/stats - staff=%s, shifts=%d, efficiency=%.1f%%",
		email, stats.ShiftCount, stats.EfficiencyPercent)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainStats(stats))
}
