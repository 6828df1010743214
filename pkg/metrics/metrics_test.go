package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsolatedRegistries(t *testing.T) {
	a := New("studio")
	b := New("studio")

	a.SessionWarningsTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.SessionWarningsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SessionWarningsTotal))
}

func TestRegisterGauge_ExposedOnHandler(t *testing.T) {
	m := New("studio")
	m.RegisterGauge("studio_active_sessions", "Active sessions", func() float64 { return 3 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studio_active_sessions 3")
}
