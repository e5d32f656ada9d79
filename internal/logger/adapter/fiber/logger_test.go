package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk/internal/logger"
	adapter "github.com/orgdesk/orgdesk/internal/logger/adapter/fiber"
)

type accessEntry struct {
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Role   string `json:"role"`
	Error  string `json:"error"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New()
	app.Use(adapter.New(cfg))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("alive")
	})
	app.Get("/fail", func(_ *fiber.Ctx) error {
		return errors.New("boom") //nolint:goerr113
	})

	return app
}

func TestNew_WritesAccessLog(t *testing.T) {
	var out bytes.Buffer

	app := newApp(adapter.Config{
		Output: &out,
		RoleOf: func(_ *fiber.Ctx) string { return "manager" },
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?page=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	var entry accessEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, fiber.StatusOK, entry.Status)
	assert.Equal(t, "/?page=2", entry.URI)
	assert.Equal(t, fiber.MethodGet, entry.Method)
	assert.Equal(t, "manager", entry.Role)
}

func TestNew_LogsChainErrors(t *testing.T) {
	var out bytes.Buffer

	app := newApp(adapter.Config{Output: &out})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "max-age=0", resp.Header.Get(fiber.HeaderCacheControl))

	var entry accessEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, fiber.StatusInternalServerError, entry.Status)
	assert.Equal(t, "boom", entry.Error)
}

func TestNew_SkipsCheckAlive(t *testing.T) {
	var out bytes.Buffer

	app := newApp(adapter.Config{
		Output:        &out,
		Config:        logger.Log{DisableCheckAlive: true},
		CheckAliveURI: "/checkalive",
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestNew_Next(t *testing.T) {
	var out bytes.Buffer

	app := newApp(adapter.Config{
		Output: &out,
		Next:   func(_ *fiber.Ctx) bool { return true },
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, out.String())
}
