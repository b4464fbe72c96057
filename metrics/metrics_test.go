package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludhianaseo/reviewqr/metrics"
)

func TestRegistryAndHandler(t *testing.T) {
	reg := metrics.NewRegistry()

	metrics.ObserveGeneration(nil)
	metrics.ObserveGeneration(errors.New("boom"))
	metrics.ObserveHTTP("/generate", "POST", 200, 5*time.Millisecond)

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	assert.Contains(t, out, `reviewqr_generations_total{outcome="ok"}`)
	assert.Contains(t, out, `reviewqr_generations_total{outcome="error"}`)
	assert.Contains(t, out, "reviewqr_http_requests_total")
}
