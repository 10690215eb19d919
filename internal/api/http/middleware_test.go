package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/observability"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newMiddlewareApp(t *testing.T, handler fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics("test"), time.Second)
	app.Get("/probe", handler)
	return app
}

func callProbe(t *testing.T, app *fiber.App) (int, errorEnvelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/probe", nil), -1)
	require.NoError(t, err)

	var body errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorMiddlewareMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.NewValidationError("invalid status", map[string]any{"status": "Closed"}), fiber.StatusBadRequest, apperrors.CodeValidation},
		{"not found", apperrors.NewNotFound("complaint", nil), fiber.StatusNotFound, apperrors.CodeNotFound},
		{"forbidden", apperrors.NewForbidden("administrator role required"), fiber.StatusForbidden, apperrors.CodeForbidden},
		{"persistence", apperrors.NewPersistenceError(errors.New("connection reset")), fiber.StatusInternalServerError, apperrors.CodePersistence},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, apperrors.CodeInternal},
		{"fiber error", fiber.ErrBadRequest, fiber.StatusBadRequest, apperrors.CodeValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newMiddlewareApp(t, func(*fiber.Ctx) error { return tc.err })
			status, body := callProbe(t, app)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestErrorMiddlewareHidesStoreDetails(t *testing.T) {
	app := newMiddlewareApp(t, func(*fiber.Ctx) error {
		return apperrors.NewPersistenceError(errors.New("dial tcp 10.0.0.5:5432: refused"))
	})
	_, body := callProbe(t, app)
	assert.Equal(t, "storage unavailable", body.Error.Message)
	assert.Empty(t, body.Error.Details)
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	app := newMiddlewareApp(t, func(*fiber.Ctx) error { panic("nil map write") })
	status, body := callProbe(t, app)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, apperrors.CodeInternal, body.Error.Code)
}

func TestRequestTimeoutReachesHandlers(t *testing.T) {
	app := newMiddlewareApp(t, func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return errors.New("no deadline")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/probe", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
