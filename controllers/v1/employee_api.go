package apiv1

import (
	"hr-payroll-backend/controllers"
	employeehandler "hr-payroll-backend/lib/employee"
	apimodels "hr-payroll-backend/models/api"
	employeeapimodels "hr-payroll-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employees", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.deactivate)
			idRoute.Get("qr", controller.qr)
			idRoute.Get("photo", controller.getPhoto)
			idRoute.Post("photo", controller.uploadPhoto)
		})
	})
}

// @Summary Список сотрудников
// @Tags Сотрудники
// @Description Список сотрудников с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.ListRequest	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/list [post]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	var payload employeeapimodels.ListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := employeehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание
// @Tags Сотрудники
// @Description Создание сотрудника, табельный номер и QR код формируются автоматически
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.CreateEmployee	true	"request body"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.CreateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [post]
func (c *employeeApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.CreateEmployee
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := employeehandler.Instance.Create(ctx.UserContext(), payload, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Сотрудники
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := employeehandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Сотрудники
// @Description Обновление, пустой пароль не меняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.UpdateEmployee	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [put]
func (c *employeeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload employeeapimodels.UpdateEmployee
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = employeehandler.Instance.Update(ctx.UserContext(), id, payload, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Деактивация
// @Tags Сотрудники
// @Description Сотрудник переводится в статус Inactive, записи не удаляются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id} [delete]
func (c *employeeApiController) deactivate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = employeehandler.Instance.Deactivate(ctx.UserContext(), id, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка деактивации сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary QR код
// @Tags Сотрудники
// @Description PNG с QR кодом табельного номера для киоска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/qr [get]
func (c *employeeApiController) qr(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, fileName, err := employeehandler.Instance.GetQR(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения QR кода")
	}
	return c.SendFile(ctx, body, fileName, "image/png")
}

// @Summary Фото
// @Tags Сотрудники
// @Description Фото профиля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/photo [get]
func (c *employeeApiController) getPhoto(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, contentType, err := employeehandler.Instance.GetPhoto(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения фото")
	}
	return c.SendInline(ctx, body, contentType)
}

// @Summary Загрузка фото
// @Tags Сотрудники
// @Description Загрузка фото профиля (png, jpg, jpeg, gif)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   photo				formData	file	true	"Фото"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees/{id}/photo [post]
func (c *employeeApiController) uploadPhoto(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, contentType, body, err := c.FormFile(ctx, "photo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = employeehandler.Instance.UploadPhoto(ctx.UserContext(), id, fileName, contentType, body, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки фото")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
