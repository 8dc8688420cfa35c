package middleware

import (
	"github.com/gofiber/fiber/v2"
)

var securityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; img-src 'self' data: blob:; style-src 'self' 'unsafe-inline'; connect-src 'self' ws: wss:",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Permissions-Policy":        "geolocation=(), microphone=(), camera=()",
}

func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		for key, value := range securityHeaders {
			c.Set(key, value)
		}
		return err
	}
}
