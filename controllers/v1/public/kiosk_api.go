package publicapi

import (
	"hr-payroll-backend/controllers"
	attendancehandler "hr-payroll-backend/lib/attendance"
	apimodels "hr-payroll-backend/models/api"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"

	"github.com/gofiber/fiber/v2"
)

type kioskApiController struct {
	controllers.BaseAPIController
}

func InitKioskApiRouters(app *fiber.App) {
	controller := kioskApiController{}
	app.Route("kiosk", func(router fiber.Router) {
		router.Post("punch", controller.punch)
		router.Post("scan", controller.scan)
	})
}

// @Summary Отметка по табельному номеру
// @Tags Киоск
// @Description Приход или уход сотрудника по табельному номеру, введенному вручную
// @Param	body body	 attendanceapimodels.PunchRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.PunchResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kiosk/punch [post]
func (c *kioskApiController) punch(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.PunchRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload.ScanData = ""
	return c.doPunch(ctx, payload)
}

// @Summary Отметка по QR/NFC
// @Tags Киоск
// @Description Приход или уход сотрудника по данным сканера QR кода или NFC карты
// @Param	body body	 attendanceapimodels.PunchRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.PunchResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/kiosk/scan [post]
func (c *kioskApiController) scan(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.PunchRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload.EmployeeID = ""
	return c.doPunch(ctx, payload)
}

func (c *kioskApiController) doPunch(ctx *fiber.Ctx, payload attendanceapimodels.PunchRequest) error {
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := attendancehandler.Instance.Punch(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
