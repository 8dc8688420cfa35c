package fiberlog

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestMaskBody(t *testing.T) {
	t.Run("пароли скрываются", func(t *testing.T) {
		body := `{"username":"admin","password":"Secret#123","new_password":"x\"y"}`
		require.Equal(t, `{"username":"admin","password":"***","new_password":"***"}`, maskBody("application/json", []byte(body)))
	})
	t.Run("multipart", func(t *testing.T) {
		require.Equal(t, "<multipart>", maskBody("multipart/form-data; boundary=x", []byte("data")))
	})
	t.Run("бинарные данные", func(t *testing.T) {
		require.Equal(t, "<binary>", maskBody("application/pdf", []byte("%PDF")))
	})
	t.Run("длинное тело", func(t *testing.T) {
		result := maskBody("application/json", []byte(strings.Repeat("a", 3000)))
		require.Len(t, result, maxLoggedBody+3)
	})
	t.Run("пустое тело", func(t *testing.T) {
		require.Equal(t, "", maskBody("application/json", nil))
	})
}

func TestLoggerMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger:    logger,
		Tags:      []string{TagMethod, TagPath, TagStatus, TagBody},
		SkipPaths: []string{"/ws"},
	}))
	app.Post("/auth/login", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})
	app.Get("/ws/connect", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("отклоненный запрос с паролем", func(t *testing.T) {
		hook.Reset()
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"password":"123"}`))
		req.Header.Set("Content-Type", "application/json")
		_, err := app.Test(req)
		require.NoError(t, err)
		require.Len(t, hook.Entries, 1)
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		require.Equal(t, `{"password":"***"}`, hook.LastEntry().Data[TagBody])
	})
	t.Run("ошибка сервера", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		require.NoError(t, err)
		require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		require.NotContains(t, hook.LastEntry().Data, TagBody)
	})
	t.Run("пропуск пути", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/ws/connect", nil))
		require.NoError(t, err)
		require.Empty(t, hook.Entries)
	})
}
