package middleware

import (
	"fmt"
	apimodels "hr-payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit отклоняет запрос по заявленному Content-Length до чтения тела, 0 - без ограничения
func WithBodyLimit(limit int64) fiber.Handler {
	message := fmt.Sprintf("файл слишком большой, максимальный размер: %.1fMB", float64(limit)/(1024*1024))
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		if size := c.Request().Header.ContentLength(); size > 0 && int64(size) > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(message))
		}
		return c.Next()
	}
}
