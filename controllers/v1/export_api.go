package apiv1

import (
	"hr-payroll-backend/controllers"
	exporthandler "hr-payroll-backend/lib/export"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportApiController struct {
	controllers.BaseAPIController
}

func InitExportApiRouters(app *fiber.App) {
	controller := exportApiController{}
	app.Route("export", func(router fiber.Router) {
		router.Get("employees", controller.employees)
		router.Get("payroll", controller.payroll)
		router.Get("attendance", controller.attendance)
	})
}

// @Summary Выгрузка сотрудников
// @Tags Выгрузка
// @Description Активные сотрудники в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/employees [get]
func (c *exportApiController) employees(ctx *fiber.Ctx) error {
	body, fileName, err := exporthandler.Instance.Employees()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки сотрудников")
	}
	return c.SendFile(ctx, body.Bytes(), fileName, xlsxContentType)
}

// @Summary Выгрузка ведомости
// @Tags Выгрузка
// @Description Расчеты зарплаты в xlsx, без периода - все
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   period				query		string	false	"ГГГГ-ММ"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/payroll [get]
func (c *exportApiController) payroll(ctx *fiber.Ctx) error {
	body, fileName, err := exporthandler.Instance.Payroll(ctx.Query("period"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки ведомости")
	}
	return c.SendFile(ctx, body.Bytes(), fileName, xlsxContentType)
}

// @Summary Выгрузка посещаемости
// @Tags Выгрузка
// @Description Журнал посещаемости в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   employee_id			query		string	false	"Табельный номер"
// @Param   from				query		string	false	"ГГГГ-ММ-ДД"
// @Param   to					query		string	false	"ГГГГ-ММ-ДД"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/attendance [get]
func (c *exportApiController) attendance(ctx *fiber.Ctx) error {
	filter := attendanceapimodels.AttendanceFilter{
		EmployeeID: ctx.Query("employee_id"),
		From:       ctx.Query("from"),
		To:         ctx.Query("to"),
		Limit:      1000,
	}
	body, fileName, err := exporthandler.Instance.Attendance(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки посещаемости")
	}
	return c.SendFile(ctx, body.Bytes(), fileName, xlsxContentType)
}
