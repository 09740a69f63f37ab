package middleware

import (
	"encoding/json"
	"hirex-backend/lib/rbac"
	authutils "hirex-backend/lib/utils/auth-utils"
	"hirex-backend/models"
	apimodels "hirex-backend/models/api"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func newApp() *fiber.App {
	app := fiber.New()
	api := fiber.New()
	api.Use(AuthorizationWithSecret(secret))
	api.Use(RbacWith(rbac.NewInstance()))
	app.Mount("/api/v1", api)
	echo := func(ctx *fiber.Ctx) error {
		return ctx.JSON(apimodels.NewResponse(string(GetUserRole(ctx)) + ":" + GetUserID(ctx)))
	}
	api.Post("/job-requisitions/:id/approval", echo)
	api.Get("/unregistered", echo)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, role models.UserRole, userID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := authutils.SignToken(secret, userID, "Test User", role, time.Hour)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRbacMiddleware(t *testing.T) {
	app := newApp()

	resp := call(t, app, http.MethodPost, "/api/v1/job-requisitions/1/approval", models.CDORole, "u-1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body apimodels.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "CDO:u-1", body.Data)

	resp = call(t, app, http.MethodPost, "/api/v1/job-requisitions/1/approval", models.RecruiterRole, "u-2")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/v1/unregistered", models.RecruiterRole, "u-2")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/v1/unregistered", models.RecruiterRole, "")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/v1/unregistered", "", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWrongSigningKey(t *testing.T) {
	app := newApp()
	token, err := authutils.SignToken("other-secret", "u-1", "", models.CDORole, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unregistered", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(8))
	app.Post("/", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long body")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestErrNotify(t *testing.T) {
	received := make(chan errNotification, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var n errNotification
		_ = json.Unmarshal(raw, &n)
		received <- n
	}))
	defer hook.Close()

	app := fiber.New()
	app.Use(ErrNotify(hook.URL))
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("Failed to load"))
	})
	app.Get("/fine", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fine", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	select {
	case n := <-received:
		require.Equal(t, fiber.StatusInternalServerError, n.Code)
		require.Equal(t, "/boom", n.Path)
		require.Equal(t, "Failed to load", n.Error)
	case <-time.After(3 * time.Second):
		t.Fatal("notification was not sent")
	}
}
