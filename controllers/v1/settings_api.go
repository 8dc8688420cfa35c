package apiv1

import (
	"hr-payroll-backend/controllers"
	settingshandler "hr-payroll-backend/lib/settings"
	apimodels "hr-payroll-backend/models/api"
	settingsapimodels "hr-payroll-backend/models/api/settings"

	"github.com/gofiber/fiber/v2"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app *fiber.App) {
	controller := settingsApiController{}
	app.Route("settings", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Put("", controller.update)
		router.Get("logo", controller.getLogo)
		router.Post("logo", controller.uploadLogo)
	})
}

// @Summary Настройки
// @Tags Настройки
// @Description Системные настройки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]settingsapimodels.SettingView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) list(ctx *fiber.Ctx) error {
	list, err := settingshandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения настроек")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменение настроек
// @Tags Настройки
// @Description Изменение значений настроек
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 settingsapimodels.UpdateRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [put]
func (c *settingsApiController) update(ctx *fiber.Ctx) error {
	var payload settingsapimodels.UpdateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := settingshandler.Instance.Update(payload, c.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения настроек")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Логотип
// @Tags Настройки
// @Description Логотип организации
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/logo [get]
func (c *settingsApiController) getLogo(ctx *fiber.Ctx) error {
	body, contentType, err := settingshandler.Instance.GetLogo(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения логотипа")
	}
	return c.SendInline(ctx, body, contentType)
}

// @Summary Загрузка логотипа
// @Tags Настройки
// @Description Загрузка логотипа (png, jpg, jpeg, gif, svg), предыдущий удаляется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   logo				formData	file	true	"Логотип"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/logo [post]
func (c *settingsApiController) uploadLogo(ctx *fiber.Ctx) error {
	fileName, contentType, body, err := c.FormFile(ctx, "logo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = settingshandler.Instance.UploadLogo(ctx.UserContext(), fileName, contentType, body, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки логотипа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
