package fiberlog

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New журнал запросов api
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	pid := os.Getpid()
	tags := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions || skipPath(cfg.SkipPaths, c.Path()) {
			return c.Next()
		}
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()

		entry := logger.WithFields(collectFields(tags, c, d))
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("ошибка обработки запроса api")
		case status >= fiber.StatusBadRequest:
			entry.Warn("запрос api отклонен")
		default:
			entry.Info("запрос api")
		}
		return err
	}
}

// collectFields пустые строковые значения в журнал не попадают
func collectFields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(tags))
	for key, tag := range tags {
		value := tag(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

func skipPath(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
