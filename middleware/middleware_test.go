package middleware

import (
	"hr-payroll-backend/config"
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	"hr-payroll-backend/models"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	require.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	app.Post("/upload", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	t.Run("в пределах лимита", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/upload", strings.NewReader("12345")))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("превышение лимита", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/upload", strings.NewReader("123456789012345")))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}

func TestLoginRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimiter(2), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiterDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(0))
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestAuthorizationRequired(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 120

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(authutils.GetUserID(ctx))
	})
	request := func(token string) int {
		req := httptest.NewRequest("GET", "/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("без токена", func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, request(""))
	})
	t.Run("access token", func(t *testing.T) {
		token, err := authutils.GetToken("u1", "Иван", "EMP001", models.EmployeeRole)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, request(token))
	})
	t.Run("refresh token не дает доступа", func(t *testing.T) {
		token, err := authutils.GetRefreshToken("u1", "Иван")
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, request(token))
	})
}
