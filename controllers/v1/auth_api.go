package apiv1

import (
	"hr-payroll-backend/controllers"
	authhandler "hr-payroll-backend/lib/auth"
	"hr-payroll-backend/middleware"
	apimodels "hr-payroll-backend/models/api"
	authapimodels "hr-payroll-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type authApiController struct {
	controllers.BaseAPIController
}

// InitAuthApiRouters вход и обновление токена доступны без авторизации
func InitAuthApiRouters(app *fiber.App, loginPerMinute int) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", middleware.LoginRateLimiter(loginPerMinute), controller.login)
		router.Post("refresh-token", controller.refreshToken)
	})
}

func InitProfileApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Get("me", controller.me)
		router.Post("logout", controller.logout)
		router.Put("change_password", controller.changePassword)
	})
}

// @Summary Аутентификация пользователя
// @Tags Аутентификация пользователей
// @Description Аутентификация пользователя
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 429
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload.Username, payload.Password, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка входа в систему")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление токена
// @Tags Аутентификация пользователей
// @Description Обновление токена
// @Param	body				body		authapimodels.JWTRefreshRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/refresh-token [post]
func (c *authApiController) refreshToken(ctx *fiber.Ctx) error {
	var payload authapimodels.JWTRefreshRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.RefreshToken(payload.RefreshToken)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления токена")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить информацию о текущем пользователе
// @Tags Аутентификация пользователей
// @Description Профиль и права текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.MeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	resp, err := authhandler.Instance.Me(c.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выход
// @Tags Аутентификация пользователей
// @Description Выход из системы, событие пишется в журнал безопасности
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @router /api/v1/auth/logout [post]
func (c *authApiController) logout(ctx *fiber.Ctx) error {
	authhandler.Instance.Logout(c.GetActor(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена пароля
// @Tags Аутентификация пользователей
// @Description Смена собственного пароля
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		authapimodels.ChangePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/change_password [put]
func (c *authApiController) changePassword(ctx *fiber.Ctx) error {
	var payload authapimodels.ChangePasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := authhandler.Instance.ChangePassword(payload, c.GetActor(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены пароля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
