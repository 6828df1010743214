package get_shift_stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/shifts/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubShifts struct {
	stats domain.ShiftStats
	got   string
}

func (s *stubShifts) StatsFor(email string) domain.ShiftStats {
	s.got = email
	return s.stats
}

func TestHandle(t *testing.T) {
	stub := &stubShifts{stats: domain.ShiftStats{
		StaffEmail:        "ana@studio.test",
		ShiftCount:        1,
		WorkedSeconds:     3600,
		ServiceSeconds:    1800,
		EfficiencyPercent: 50,
	}}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/staff/{email}/shift/stats", NewHandler(stub, nopLogger{}).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/staff/ana@studio.test/shift/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@studio.test", stub.got)

	var resp models.ShiftStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ShiftCount)
	assert.Equal(t, int64(3600), resp.WorkedSeconds)
	assert.InDelta(t, 50.0, resp.EfficiencyPercent, 0.0001)
}
