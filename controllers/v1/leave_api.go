package apiv1

import (
	"hr-payroll-backend/controllers"
	leavehandler "hr-payroll-backend/lib/leave"
	apimodels "hr-payroll-backend/models/api"
	leaveapimodels "hr-payroll-backend/models/api/leave"

	"github.com/gofiber/fiber/v2"
)

type leaveApiController struct {
	controllers.BaseAPIController
}

func InitLeaveApiRouters(app *fiber.App) {
	controller := leaveApiController{}
	app.Route("leaves", func(router fiber.Router) {
		router.Post("", controller.request)
		router.Get("", controller.listAll)
		router.Get("my", controller.my)
		router.Get("stats", controller.stats)
		router.Get("pending", controller.pending)
		router.Put(":id/decide", controller.decide)
	})
}

// @Summary Заявка на отпуск
// @Tags Отпуска
// @Description Заявка текущего пользователя, создается в статусе Pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 leaveapimodels.LeaveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves [post]
func (c *leaveApiController) request(ctx *fiber.Ctx) error {
	var payload leaveapimodels.LeaveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := leavehandler.Instance.Request(c.GetActor(ctx).UserID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Все заявки
// @Tags Отпуска
// @Description Все заявки на отпуск
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves [get]
func (c *leaveApiController) listAll(ctx *fiber.Ctx) error {
	list, err := leavehandler.Instance.ListAll()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Заявки на рассмотрении
// @Tags Отпуска
// @Description Заявки в статусе Pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/pending [get]
func (c *leaveApiController) pending(ctx *fiber.Ctx) error {
	list, err := leavehandler.Instance.ListPending()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Мои заявки
// @Tags Отпуска
// @Description Заявки текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]leaveapimodels.LeaveView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/my [get]
func (c *leaveApiController) my(ctx *fiber.Ctx) error {
	list, err := leavehandler.Instance.My(c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявок на отпуск")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Статистика заявок
// @Tags Отпуска
// @Description Количество заявок текущего пользователя по статусам
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=leaveapimodels.LeaveStats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/stats [get]
func (c *leaveApiController) stats(ctx *fiber.Ctx) error {
	resp, err := leavehandler.Instance.Stats(c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики отпусков")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Решение по заявке
// @Tags Отпуска
// @Description Одобрение или отклонение заявки, сотрудник получает уведомление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 leaveapimodels.DecisionRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/leaves/{id}/decide [put]
func (c *leaveApiController) decide(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload leaveapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = leavehandler.Instance.Decide(id, payload.Status, c.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
