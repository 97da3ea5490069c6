package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler fiber.Handler) (int, APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestOK(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return OK(c, fiber.Map{"id": 1}, "retrieved", fiber.Map{"total": 1})
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, body.Success)
	require.Equal(t, "retrieved", body.Message)
	require.NotNil(t, body.Data)
	require.NotNil(t, body.Meta)

	status, body = perform(t, func(c *fiber.Ctx) error {
		return OK(c, nil, "", nil)
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "success", body.Message)
}

func TestCreated(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return Created(c, fiber.Map{"id": 2}, "")
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, body.Success)
	require.Equal(t, "created", body.Message)
}

func TestSendError(t *testing.T) {
	status, body := perform(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "already decided")
	})
	require.Equal(t, http.StatusConflict, status)
	require.False(t, body.Success)
	require.Equal(t, "already decided", body.Message)
	require.Nil(t, body.Data)
}
