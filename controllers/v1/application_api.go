package apiv1

import (
	"hr-payroll-backend/controllers"
	applicationhandler "hr-payroll-backend/lib/application"
	"hr-payroll-backend/models"
	apimodels "hr-payroll-backend/models/api"
	applicationapimodels "hr-payroll-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("pending_count", controller.pendingCount)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("resume", controller.resume)
			idRoute.Put("status", controller.updateStatus)
		})
	})
}

// @Summary Отклики
// @Tags Отклики
// @Description Список откликов, необязательный фильтр по статусу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status				query		string	false	"Pending/In Review/Accepted/Rejected"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications [get]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	status := models.ApplicationStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("указан неизвестный статус"))
	}
	list, err := applicationhandler.Instance.List(status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения откликов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Новые отклики
// @Tags Отклики
// @Description Количество откликов в статусе Pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/pending_count [get]
func (c *applicationApiController) pendingCount(ctx *fiber.Ctx) error {
	count, err := applicationhandler.Instance.PendingCount()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения откликов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}

// @Summary Получение по ИД
// @Tags Отклики
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := applicationhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Резюме
// @Tags Отклики
// @Description Скачивание резюме кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/resume [get]
func (c *applicationApiController) resume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, fileName, contentType, err := applicationhandler.Instance.GetResume(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения резюме")
	}
	return c.SendFile(ctx, body, fileName, contentType)
}

// @Summary Смена статуса
// @Tags Отклики
// @Description Смена статуса отклика, кандидат получает письмо
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 applicationapimodels.StatusUpdateRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/status [put]
func (c *applicationApiController) updateStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload applicationapimodels.StatusUpdateRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applicationhandler.Instance.UpdateStatus(id, payload, c.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
