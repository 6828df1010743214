package get_session_aggregates

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
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

// Handle GET /api/v1/sessions/aggregates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agg := h.service.Aggregates()

	h.logger.Info("GET /sessions/aggregates - today=%d (%s), month=%d (%s)",
		agg.TodayCount, agg.TodayRevenue, agg.MonthCount, agg.MonthRevenue)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAggregates(agg))
}
