package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
	retryInterval time.Duration
}

// NewInstance retryInterval используется после неудачного запуска, 0 - ждать обычный интервал
func NewInstance(WorkerName string, firstRunDelay, runInterval, retryInterval time.Duration) *BaseImpl {
	if retryInterval <= 0 {
		retryInterval = runInterval
	}
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
		retryInterval: retryInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run блокирует до завершения контекста
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context) error) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
		}
		started := time.Now()
		logger.Info("Задача запущена")
		next := i.runInterval
		if err := i.safeRun(ctx, jobFunc); err != nil {
			next = i.retryInterval
			logger.
				WithError(err).
				WithField("retry_in", next.String()).
				Error("Задача завершилась с ошибкой")
		} else {
			logger.WithField("duration", time.Since(started).String()).Info("Задача выполнена")
		}
		timer.Reset(next)
	}
}

func (i BaseImpl) safeRun(ctx context.Context, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return jobFunc(ctx)
}
