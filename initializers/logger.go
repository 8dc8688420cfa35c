package initializers

import (
	"hr-payroll-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

func newJSONFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger общий логгер приложения и отдельный логгер журнала запросов api
func InitLogger(level string) *fiberlog.Config {
	appLevel, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("неизвестный уровень логирования, используется info")
		appLevel = log.InfoLevel
	}
	log.SetFormatter(newJSONFormatter())
	log.SetLevel(appLevel)

	requestLogger := log.New()
	requestLogger.SetFormatter(newJSONFormatter())
	requestLogger.SetLevel(appLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagIP,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
		// websocket
		SkipPaths: []string{"/api/v1/ws"},
	}
}
