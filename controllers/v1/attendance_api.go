package apiv1

import (
	"hr-payroll-backend/controllers"
	attendancehandler "hr-payroll-backend/lib/attendance"
	apimodels "hr-payroll-backend/models/api"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"

	"github.com/gofiber/fiber/v2"
)

type attendanceApiController struct {
	controllers.BaseAPIController
}

func InitAttendanceApiRouters(app *fiber.App) {
	controller := attendanceApiController{}
	app.Route("attendance", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("today_count", controller.todayCount)
		router.Post("my", controller.my)
	})
}

// @Summary Журнал посещаемости
// @Tags Посещаемость
// @Description Журнал посещаемости с фильтром по сотруднику и датам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.AttendanceFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/list [post]
func (c *attendanceApiController) list(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.AttendanceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := attendancehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отметившиеся сегодня
// @Tags Посещаемость
// @Description Количество сотрудников с отметкой прихода за сегодня
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/today_count [get]
func (c *attendanceApiController) todayCount(ctx *fiber.Ctx) error {
	count, err := attendancehandler.Instance.TodayCount()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(count))
}

// @Summary Моя посещаемость
// @Tags Посещаемость
// @Description Отметки текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.AttendanceFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/my [post]
func (c *attendanceApiController) my(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.AttendanceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := attendancehandler.Instance.My(c.GetActor(ctx).UserID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
