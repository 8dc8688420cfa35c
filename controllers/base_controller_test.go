package controllers

import (
	"encoding/json"
	"hr-payroll-backend/lib/utils/apperror"
	apimodels "hr-payroll-backend/models/api"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/bad", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, c.GetLogger(ctx), apperror.BadRequest("неверный период"), "Ошибка расчета")
	})
	app.Get("/internal", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, c.GetLogger(ctx), errors.New("db is down"), "Ошибка расчета")
	})

	t.Run("ошибка клиента передается как есть", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/bad", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body apimodels.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "fail", body.Status)
		require.Equal(t, "неверный период", body.Message)
	})
	t.Run("внутренняя ошибка скрывается", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/internal", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		var body apimodels.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "Ошибка расчета", body.Message)
	})
}

func TestGetParam(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/backups/:name", func(ctx *fiber.Ctx) error {
		name, err := c.GetParam(ctx, "name")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return ctx.SendString(name)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/backups/backup%20one", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	require.Equal(t, "backup one", string(buf[:n]))
}
