package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки журнала запросов
type Config struct {
	// Logger по умолчанию стандартный logrus
	Logger *logrus.Logger
	Tags   []string
	// SkipPaths префиксы путей, запросы к которым не пишутся в журнал
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
