package logout

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk/internal/config"
	"github.com/orgdesk/orgdesk/internal/web/handler/login"
	"github.com/orgdesk/orgdesk/internal/web/session"
)

func TestLogout_DeletesSession(t *testing.T) {
	session.Init(nil)

	id := session.GenerateSessionID()
	require.NoError(t, (&session.Data{UserID: 1}).Write(id, time.Minute))

	app := fiber.New()
	var s Service
	require.NoError(t, s.Init(app, &config.Config{}, nil))

	for _, method := range []string{fiber.MethodGet, fiber.MethodPost} {
		req := httptest.NewRequest(method, Path, nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, login.Path, resp.Header.Get(fiber.HeaderLocation))
		assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), session.CookieName+"=;")
	}

	var data session.Data
	assert.ErrorIs(t, data.Read(id), session.ErrNotFound)
}

func TestInit_Nil(t *testing.T) {
	var s Service
	assert.Error(t, s.Init(nil, nil, nil))
}
