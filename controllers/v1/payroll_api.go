package apiv1

import (
	"hr-payroll-backend/controllers"
	payrollhandler "hr-payroll-backend/lib/payroll"
	apimodels "hr-payroll-backend/models/api"
	payrollapimodels "hr-payroll-backend/models/api/payroll"

	"github.com/gofiber/fiber/v2"
)

type payrollApiController struct {
	controllers.BaseAPIController
}

func InitPayrollApiRouters(app *fiber.App) {
	controller := payrollApiController{}
	app.Route("payroll", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("rates", controller.rates)
		router.Post("generate", controller.generate)
		router.Get("my", controller.my)
		router.Get(":id/payslip", controller.payslip)
	})
}

// @Summary Ведомость
// @Tags Зарплата
// @Description Расчеты зарплаты с фильтром по периоду и табельному номеру
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 payrollapimodels.PayrollFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]payrollapimodels.PayrollView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/list [post]
func (c *payrollApiController) list(ctx *fiber.Ctx) error {
	var payload payrollapimodels.PayrollFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := payrollhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ведомости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Параметры расчета
// @Tags Зарплата
// @Description Ставки налогов и удержаний, коэффициент сверхурочных
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=payrollhandler.Rates}
// @Failure 403
// @router /api/v1/payroll/rates [get]
func (c *payrollApiController) rates(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(payrollhandler.Instance.Rates()))
}

// @Summary Расчет зарплаты
// @Tags Зарплата
// @Description Расчет за месяц для всех активных сотрудников, существующие расчеты не пересчитываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 payrollapimodels.GenerateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=payrollapimodels.GenerateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/generate [post]
func (c *payrollApiController) generate(ctx *fiber.Ctx) error {
	var payload payrollapimodels.GenerateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := payrollhandler.Instance.Generate(ctx.UserContext(), payload.Period, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета зарплаты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои расчеты
// @Tags Зарплата
// @Description Расчеты зарплаты текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]payrollapimodels.PayrollView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/my [get]
func (c *payrollApiController) my(ctx *fiber.Ctx) error {
	list, err := payrollhandler.Instance.My(c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расчетов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Расчетный листок
// @Tags Зарплата
// @Description PDF расчетного листка, сотруднику доступен только свой
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/{id}/payslip [get]
func (c *payrollApiController) payslip(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, fileName, err := payrollhandler.Instance.Payslip(id, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования расчетного листка")
	}
	return c.SendFile(ctx, body, fileName, "application/pdf")
}
