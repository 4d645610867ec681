package meta

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/cardrank/internal/model/cache"
	"exusiai.dev/cardrank/internal/model/types"
	"exusiai.dev/cardrank/internal/pkg/middlewares"
	"exusiai.dev/cardrank/internal/server/httpserver"
	"exusiai.dev/cardrank/internal/service"
)

const adminKey = "s3cret"

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

type fakeAdmin struct {
	purged    []string
	refreshed int
	err       error
}

func (f *fakeAdmin) PurgeCache(name string) error {
	if name != service.PurgeAll && name != "ranking" {
		return errors.Wrapf(cache.ErrUnknownCache, "%q", name)
	}
	f.purged = append(f.purged, name)
	return nil
}

func (f *fakeAdmin) CacheNames() []string {
	return []string{"catalog", "ranking"}
}

func (f *fakeAdmin) Refresh(context.Context) error {
	f.refreshed++
	return f.err
}

func newApp(health HealthService, admin AdminService, key string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	(&AdminController{AdminService: admin}).Register(app.Group("/api/_/admin", middlewares.AdminKey(key)))
	(&Meta{HealthService: health}).Register(app.Group("/api/_"))
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func adminRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminKey)
	return req
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newApp(fakeHealth{}, &fakeAdmin{}, adminKey), httptest.NewRequest(fiber.MethodGet, "/api/_/health", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, _ = do(t, newApp(fakeHealth{err: service.ErrDatabaseNotReachable}, &fakeAdmin{}, adminKey), httptest.NewRequest(fiber.MethodGet, "/api/_/health", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestBinInfo(t *testing.T) {
	resp, body := do(t, newApp(fakeHealth{}, &fakeAdmin{}, adminKey), httptest.NewRequest(fiber.MethodGet, "/api/_/bininfo", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "build")
}

func TestAdminRequiresKey(t *testing.T) {
	admin := &fakeAdmin{}
	app := newApp(fakeHealth{}, admin, adminKey)

	req := adminRequest(fiber.MethodPost, "/api/_/admin/purge", `{"name":"ranking"}`)
	req.Header.Del(fiber.HeaderAuthorization)
	resp, _ := do(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = adminRequest(fiber.MethodPost, "/api/_/admin/purge", `{"name":"ranking"}`)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer wrong")
	resp, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	assert.Empty(t, admin.purged)
}

func TestAdminDisabledWithoutKey(t *testing.T) {
	admin := &fakeAdmin{}
	app := newApp(fakeHealth{}, admin, "")

	resp, _ := do(t, app, adminRequest(fiber.MethodPost, "/api/_/admin/refresh", ""))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, admin.refreshed)
}

func TestPurgeCache(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPurged []string
	}{
		{"known cache", `{"name":"ranking"}`, fiber.StatusOK, []string{"ranking"}},
		{"every cache", `{"name":"*"}`, fiber.StatusOK, []string{"*"}},
		{"unknown cache", `{"name":"nope"}`, fiber.StatusNotFound, nil},
		{"missing name", `{}`, fiber.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := &fakeAdmin{}
			app := newApp(fakeHealth{}, admin, adminKey)

			resp, body := do(t, app, adminRequest(fiber.MethodPost, "/api/_/admin/purge", tt.body))
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			assert.Equal(t, tt.wantPurged, admin.purged)

			if tt.wantStatus == fiber.StatusOK {
				var got types.PurgeCacheResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, tt.wantPurged[0], got.Purged)
			}
		})
	}
}

func TestCacheNames(t *testing.T) {
	resp, body := do(t, newApp(fakeHealth{}, &fakeAdmin{}, adminKey), adminRequest(fiber.MethodGet, "/api/_/admin/caches", ""))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"names":["catalog","ranking"]}`, string(body))
}

func TestRefresh(t *testing.T) {
	admin := &fakeAdmin{}
	resp, _ := do(t, newApp(fakeHealth{}, admin, adminKey), adminRequest(fiber.MethodPost, "/api/_/admin/refresh", ""))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, admin.refreshed)

	failing := &fakeAdmin{err: errors.Wrap(service.ErrMatchSourceUnavailable, "page at offset 0")}
	resp, body := do(t, newApp(fakeHealth{}, failing, adminKey), adminRequest(fiber.MethodPost, "/api/_/admin/refresh", ""))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "UPSTREAM_UNAVAILABLE")
}
