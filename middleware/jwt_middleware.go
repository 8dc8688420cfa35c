package middleware

import (
	"hr-payroll-backend/config"
	authutils "hr-payroll-backend/lib/utils/auth-utils"
	apimodels "hr-payroll-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// AuthorizationRequired токен из заголовка Authorization, для websocket из параметра token
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		TokenLookup: "header:Authorization,query:token",
		SuccessHandler: func(ctx *fiber.Ctx) error {
			if !authutils.IsAccessToken(ctx) {
				return unauthorized(ctx)
			}
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			log.WithField("path", ctx.Path()).WithField("ip", ctx.IP()).Debug(err.Error())
			return unauthorized(ctx)
		},
	})
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
}
