package apiv1

import (
	"hr-payroll-backend/controllers"
	"hr-payroll-backend/lib/backup"
	apimodels "hr-payroll-backend/models/api"
	backupapimodels "hr-payroll-backend/models/api/backup"

	"github.com/gofiber/fiber/v2"
)

type backupApiController struct {
	controllers.BaseAPIController
}

func InitBackupApiRouters(app *fiber.App) {
	controller := backupApiController{}
	app.Route("security/backups", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route("scheduler", func(schedulerRoute fiber.Router) {
			schedulerRoute.Get("", controller.schedulerStatus)
			schedulerRoute.Post("start", controller.schedulerStart)
			schedulerRoute.Post("stop", controller.schedulerStop)
		})
		router.Route(":name", func(nameRoute fiber.Router) {
			nameRoute.Get("verify", controller.verify)
			nameRoute.Post("restore", controller.restore)
		})
	})
}

// @Summary Резервные копии
// @Tags Резервные копии
// @Description Список резервных копий, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]backupapimodels.BackupInfo}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/backups [get]
func (c *backupApiController) list(ctx *fiber.Ctx) error {
	list, err := backup.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка резервных копий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание копии
// @Tags Резервные копии
// @Description Резервная копия БД с метаданными
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 backupapimodels.CreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=backupapimodels.CreateResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/backups [post]
func (c *backupApiController) create(ctx *fiber.Ctx) error {
	var payload backupapimodels.CreateRequest
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := backup.Instance.Create(ctx.UserContext(), payload, c.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания резервной копии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Проверка копии
// @Tags Резервные копии
// @Description Проверка целостности резервной копии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   name          		path    string  				    	true         "Имя копии"
// @Success 200 {object} apimodels.Response{data=backupapimodels.VerifyResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/backups/{name}/verify [get]
func (c *backupApiController) verify(ctx *fiber.Ctx) error {
	name, err := c.backupName(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := backup.Instance.Verify(name)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки резервной копии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Восстановление
// @Tags Резервные копии
// @Description Восстановление БД из копии, перед восстановлением создается страховочная копия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   name          		path    string  				    	true         "Имя копии"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/security/backups/{name}/restore [post]
func (c *backupApiController) restore(ctx *fiber.Ctx) error {
	name, err := c.backupName(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = backup.Instance.Restore(ctx.UserContext(), name, c.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка восстановления из резервной копии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Планировщик копий
// @Tags Резервные копии
// @Description Состояние планировщика резервного копирования
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=backup.SchedulerStatus}
// @Failure 403
// @router /api/v1/security/backups/scheduler [get]
func (c *backupApiController) schedulerStatus(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(backup.Instance.SchedulerStatus()))
}

// @Summary Запуск планировщика
// @Tags Резервные копии
// @Description Запуск планировщика, первая копия создается сразу
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=bool}
// @Failure 403
// @router /api/v1/security/backups/scheduler/start [post]
func (c *backupApiController) schedulerStart(ctx *fiber.Ctx) error {
	started := backup.Instance.StartScheduler(c.GetActor(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(started))
}

// @Summary Остановка планировщика
// @Tags Резервные копии
// @Description Остановка планировщика
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @router /api/v1/security/backups/scheduler/stop [post]
func (c *backupApiController) schedulerStop(ctx *fiber.Ctx) error {
	backup.Instance.StopScheduler(c.GetActor(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *backupApiController) backupName(ctx *fiber.Ctx) (string, error) {
	name, err := c.GetParam(ctx, "name")
	if err != nil {
		return "", err
	}
	if err = backupapimodels.ValidateBackupName(name); err != nil {
		return "", err
	}
	return name, nil
}
