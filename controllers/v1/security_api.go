package apiv1

import (
	"hr-payroll-backend/controllers"
	securityhandler "hr-payroll-backend/lib/security"
	apimodels "hr-payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type securityApiController struct {
	controllers.BaseAPIController
}

func InitSecurityApiRouters(app *fiber.App) {
	controller := securityApiController{}
	app.Route("security", func(router fiber.Router) {
		router.Get("dashboard", controller.dashboard)
		router.Get("stats", controller.stats)
		router.Get("status", controller.status)
		router.Delete("logs", controller.clearLogs)
	})
}

// @Summary Панель безопасности
// @Tags Безопасность
// @Description Последние события, неудачные входы, статистика за неделю
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=securityapimodels.Dashboard}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/dashboard [get]
func (c *securityApiController) dashboard(ctx *fiber.Ctx) error {
	resp, err := securityhandler.Instance.Dashboard()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения панели безопасности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статистика событий
// @Tags Безопасность
// @Description Входы по часам за сутки, события по типам, подозрительные адреса
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=securityapimodels.Stats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/stats [get]
func (c *securityApiController) stats(ctx *fiber.Ctx) error {
	resp, err := securityhandler.Instance.Stats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики безопасности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Состояние системы
// @Tags Безопасность
// @Description Размер БД, возраст последней копии, предупреждения
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=securityapimodels.SystemStatus}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/status [get]
func (c *securityApiController) status(ctx *fiber.Ctx) error {
	resp, err := securityhandler.Instance.SystemStatus()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения состояния системы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Очистка журнала
// @Tags Безопасность
// @Description Удаление журнала, кроме последних записей
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=securityapimodels.ClearResult}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/logs [delete]
func (c *securityApiController) clearLogs(ctx *fiber.Ctx) error {
	resp, err := securityhandler.Instance.ClearLogs(c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка очистки журнала")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
