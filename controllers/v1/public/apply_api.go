package publicapi

import (
	"hr-payroll-backend/controllers"
	applicationhandler "hr-payroll-backend/lib/application"
	apimodels "hr-payroll-backend/models/api"
	applicationapimodels "hr-payroll-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applyApiController struct {
	controllers.BaseAPIController
}

func InitApplyApiRouters(app *fiber.App) {
	controller := applyApiController{}
	app.Route("apply", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Get("status/:id", controller.status)
	})
}

// @Summary Отклик на вакансию
// @Tags Отклик кандидата
// @Description Анкета кандидата с необязательным резюме (pdf, doc, docx)
// @Accept  multipart/form-data
// @Param   full_name        formData string true  "ФИО"
// @Param   email            formData string true  "Email"
// @Param   phone            formData string false "Телефон"
// @Param   address          formData string false "Адрес"
// @Param   position         formData string true  "Должность"
// @Param   work_experience  formData string false "Опыт работы"
// @Param   education        formData string false "Образование"
// @Param   skills           formData string false "Навыки"
// @Param   resume           formData file   false "Резюме"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/apply [post]
func (c *applyApiController) submit(ctx *fiber.Ctx) error {
	var payload applicationapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var resume *applicationapimodels.Resume
	if _, err := ctx.FormFile("resume"); err == nil {
		fileName, _, body, err := c.FormFile(ctx, "resume")
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		resume = &applicationapimodels.Resume{FileName: fileName, Body: body}
	}
	resp, err := applicationhandler.Instance.Submit(ctx.UserContext(), payload, resume)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статус отклика
// @Tags Отклик кандидата
// @Description Проверка статуса по номеру отклика
// @Param   id          		path    string  true         "Номер отклика (APP0001)"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.StatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/apply/status/{id} [get]
func (c *applyApiController) status(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := applicationhandler.Instance.Status(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статуса отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
