package fiberlog

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagUserAgent = "ua"
	RequestID    = "requestId"
)

const maxLoggedBody = 2048

// FuncTag возвращает значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

var passwordValueRe = regexp.MustCompile(`("[a-z_]*password"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// maskBody скрывает пароли и обрезает длинное тело
func maskBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return "<multipart>"
	}
	if !strings.Contains(contentType, "json") && !strings.HasPrefix(contentType, "text/") {
		return "<binary>"
	}
	result := passwordValueRe.ReplaceAllString(string(body), `$1"***"`)
	if len(result) > maxLoggedBody {
		result = result[:maxLoggedBody] + "..."
	}
	return result
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return maskBody(string(c.Request().Header.ContentType()), c.Body())
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return maskBody(string(c.Response().Header.ContentType()), c.Response().Body())
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			if id, ok := c.Locals("requestid").(string); ok {
				return id
			}
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
