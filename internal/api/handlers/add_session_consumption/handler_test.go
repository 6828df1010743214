package add_session_consumption

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	svc := sessions.NewService(nil, time.Second, nopLogger{})
	session, err := svc.Start(&models.StartSessionRequest{
		StaffEmail:       "ana@studio.test",
		Location:         string(domain.LocationOffSite),
		DurationCategory: string(domain.Duration1Hour),
		PaymentMethod:    string(domain.PaymentCash),
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/sessions/{sessionId}/consumptions", NewHandler(svc, nopLogger{}).Handle)
	url := "/api/v1/sessions/" + session.ID + "/consumptions"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url,
		strings.NewReader(`{"description":"juice","unitCost":"5000","quantity":3}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Consumptions, 1)
	assert.True(t, decimal.NewFromInt(15000).Equal(resp.Consumptions[0].Subtotal))

	for _, body := range []string{
		`{"description":"juice","unitCost":"5000","quantity":0}`,
		`{"description":"juice","unitCost":"5000","quantity":1001}`,
		`{"description":"","unitCost":"5000","quantity":1}`,
	} {
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
