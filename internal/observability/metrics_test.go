package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics("test")

	m.RecordRequest("/complaints/all", http.MethodGet, http.StatusOK, 15*time.Millisecond)
	m.RecordRequest("/complaints/all", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	m.RecordError("/complaints/all", http.MethodGet, "PERSISTENCE_FAILED")
	m.RecordGuardRejection("admin")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/complaints/all", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/complaints/all", http.MethodGet, "PERSISTENCE_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guardRejections.WithLabelValues("admin")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
		m.RecordError("/", http.MethodGet, "X")
		m.RecordGuardRejection("admin")
	})
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	m := NewMetrics("test")
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(requestIDHeader))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/ping", http.MethodGet, "200")))
}

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
