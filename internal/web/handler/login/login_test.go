package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orgdesk/orgdesk/internal/auth"
	"github.com/orgdesk/orgdesk/internal/config"
	"github.com/orgdesk/orgdesk/internal/db/models"
	websess "github.com/orgdesk/orgdesk/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Title: "OrgDesk",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		Access: config.Access{RedirectPath: config.DefaultRedirectPath},
	}
}

func setup(t *testing.T, devMode bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	websess.Init(nil)

	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.DevMode = devMode

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	require.NoError(t, s.Init(app, cfg, db))

	return app, db
}

func performPost(t *testing.T, app *fiber.App, form url.Values) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestInit_Nil(t *testing.T) {
	var s Service
	assert.Error(t, s.Init(nil, nil, nil))
}

func TestGet_RendersLogin(t *testing.T) {
	app, _ := setup(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, string(body))
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	app, db := setup(t, false)

	user, err := auth.NewService(db).CreateUser("bob", "bob@example.com", "s3cr3t", "", nil)
	require.NoError(t, err)

	resp, _ := performPost(t, app, url.Values{"username": {"bob"}, "password": {"s3cr3t"}})

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, config.DefaultRedirectPath, resp.Header.Get(fiber.HeaderLocation))

	var sessionID string
	for _, ck := range resp.Cookies() {
		if ck.Name == websess.CookieName {
			sessionID = ck.Value
			assert.True(t, ck.Secure, "secure cookie outside dev mode")
			assert.True(t, ck.HttpOnly)
		}
	}
	require.NotEmpty(t, sessionID)

	var data websess.Data
	require.NoError(t, data.Read(sessionID))
	assert.Equal(t, user.ID, data.UserID)
}

func TestPost_DevModeDisablesSecure(t *testing.T) {
	app, db := setup(t, true)

	_, err := auth.NewService(db).CreateUser("carol", "carol@example.com", "pass", "", nil)
	require.NoError(t, err)

	resp, _ := performPost(t, app, url.Values{"username": {"carol"}, "password": {"pass"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	setCookie := resp.Header.Get(fiber.HeaderSetCookie)
	assert.NotContains(t, strings.ToLower(setCookie), "secure")
}

func TestPost_Errors(t *testing.T) {
	app, db := setup(t, false)

	svc := auth.NewService(db)
	_, err := svc.CreateUser("dave", "dave@example.com", "pw", "", nil)
	require.NoError(t, err)
	erin, err := svc.CreateUser("erin", "erin@example.com", "pw", "", nil)
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(erin.ID))

	tests := []struct {
		name string
		form url.Values
		want error
	}{
		{"missing password", url.Values{"username": {"dave"}}, ErrInvalidFormData},
		{"unknown user", url.Values{"username": {"zoe"}, "password": {"pw"}}, ErrInvalidCredentials},
		{"wrong password", url.Values{"username": {"dave"}, "password": {"nope"}}, ErrInvalidCredentials},
		{"disabled", url.Values{"username": {"erin"}, "password": {"pw"}}, ErrAccountDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := performPost(t, app, tt.form)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want.Error(), body)
			assert.Empty(t, resp.Header.Get(fiber.HeaderSetCookie))
		})
	}
}

func TestPost_MalformedBody(t *testing.T) {
	app, _ := setup(t, false)

	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ErrInvalidFormData.Error(), string(body))
}
