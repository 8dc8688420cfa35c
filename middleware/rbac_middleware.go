package middleware

import (
	"hr-payroll-backend/lib/rbac"
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	apimodels "hr-payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RbacMiddleware маршрут без зарегистрированного правила запрещен
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := authutils.GetUserID(ctx)
		userRole := authutils.GetRole(ctx)
		if userID == "" || userRole == "" {
			return forbidden(ctx)
		}

		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			log.
				WithField("method", ctx.Method()).
				WithField("path", ctx.Path()).
				Warn("нет правила доступа для маршрута")
			return forbidden(ctx)
		}

		if !handler(userID, userRole, ctx.Path()) {
			return forbidden(ctx)
		}

		return ctx.Next()
	}
}

func forbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("недостаточно прав"))
}
