package httpserver

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/cardrank/internal/pkg/flog"
	"exusiai.dev/cardrank/internal/pkg/middlewares"
	"exusiai.dev/cardrank/internal/pkg/pgerr"
	"exusiai.dev/cardrank/internal/service"
)

func serve(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

// errorApp has no sentry middleware mounted.
func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandlerWithoutSentry(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"upstream", errors.Wrap(service.ErrMatchSourceUnavailable, "week 2 (2026-09-28)"), fiber.StatusInternalServerError, pgerr.CodeUpstreamUnavailable},
		{"generic", errors.New("boom"), fiber.StatusInternalServerError, pgerr.CodeInternalError},
		{"fiber", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed, "UNKNOWN_ERROR"},
		{"api", pgerr.ErrUnauthorized.Msg("missing key"), fiber.StatusUnauthorized, pgerr.CodeUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := serve(t, errorApp(tc.err), "/fail")
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}

	assert.Equal(t, fiber.StatusInternalServerError, pgerr.ErrInternalError.StatusCode)
	assert.Equal(t, pgerr.CodeInternalError, pgerr.ErrInternalError.ErrorCode, "shared sentinel is untouched")
}

func TestErrorHandlerRendersExtras(t *testing.T) {
	err := pgerr.ErrInvalidReq.WithExtras(pgerr.Extras{"violations": []string{"from"}})
	status, body := serve(t, errorApp(err), "/fail")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, pgerr.CodeInvalidRequest, body["code"])
	assert.Equal(t, []any{"from"}, body["violations"])
}

func TestErrorHandlerLogsWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(flog.NewHandlerMiddleware(zerolog.New(&buf)))
	app.Use(flog.RequestIDHandler("request_id", ""))
	app.Get("/fail", func(c *fiber.Ctx) error { return service.ErrMatchSourceUnavailable })

	status, _ := serve(t, app, "/fail")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, buf.String(), `"request_id":`)
	assert.Contains(t, buf.String(), `"message":"request failed"`)
}

func TestSentryHub(t *testing.T) {
	app := fiber.New()
	var got *sentry.Hub
	app.Get("/bare", func(c *fiber.Ctx) error {
		got = middlewares.SentryHub(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	hub := sentry.NewHub(nil, sentry.NewScope())
	app.Get("/hub", func(c *fiber.Ctx) error {
		c.SetUserContext(sentry.SetHubOnContext(c.UserContext(), hub))
		got = middlewares.SentryHub(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/bare", nil))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/hub", nil))
	require.NoError(t, err)
	assert.Same(t, hub, got)
}
