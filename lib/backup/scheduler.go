package backup

import (
	"context"
	"fmt"
	baseworker "hr-payroll-backend/lib/utils/base-worker"
	"hr-payroll-backend/models"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultInterval = 24 * time.Hour
	DefaultRetry    = time.Hour
)

// FailureNotifier оповещение о неудачном автоматическом копировании
type FailureNotifier func(err error)

type SchedulerStatus struct {
	Running   bool       `json:"running"`
	Interval  string     `json:"interval"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Scheduler периодическое создание резервных копий. Первая копия создается сразу после Start
type Scheduler struct {
	manager  *Manager
	audit    Auditor
	notify   FailureNotifier
	compress bool
	retry    time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	interval  time.Duration
	lastRun   *time.Time
	lastError string
}

func NewScheduler(manager *Manager, audit Auditor, compress bool, retry time.Duration, notify FailureNotifier) *Scheduler {
	if retry <= 0 {
		retry = DefaultRetry
	}
	return &Scheduler{
		manager:  manager,
		audit:    audit,
		notify:   notify,
		compress: compress,
		retry:    retry,
	}
}

// Start false, если планировщик уже запущен
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) bool {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return false
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.interval = interval
	worker := baseworker.NewInstance("backup-scheduler", 0, interval, s.retry)
	go func(done chan struct{}) {
		defer close(done)
		worker.Run(runCtx, s.runOnce)
	}(s.done)
	s.audit.LogSystemEvent(models.EventAutoBackupStarted,
		fmt.Sprintf("Автоматическое резервное копирование запущено, интервал %s", interval))
	return true
}

// Stop останавливает планировщик и дожидается завершения текущей копии
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.audit.LogSystemEvent(models.EventAutoBackupStopped, "Автоматическое резервное копирование остановлено")
}

func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := SchedulerStatus{
		Running:   s.cancel != nil,
		LastRun:   s.lastRun,
		LastError: s.lastError,
	}
	if status.Running {
		status.Interval = s.interval.String()
	}
	return status
}

func (s *Scheduler) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
			s.audit.LogSystemEvent(models.EventAutoBackupError, fmt.Sprintf("Сбой планировщика резервного копирования: %v", r))
		}
		s.finish(err)
	}()
	result, err := s.manager.CreateFullBackup(ctx, s.compress, models.SystemActor())
	if err != nil {
		s.audit.LogSystemEvent(models.EventAutoBackupFailed, fmt.Sprintf("Автоматическое резервное копирование не выполнено: %v", err))
		if s.notify != nil {
			s.notify(err)
		}
		return err
	}
	s.audit.LogSystemEvent(models.EventAutoBackupSuccess, fmt.Sprintf("Автоматическая резервная копия создана: %s", result.BackupName))
	return nil
}

func (s *Scheduler) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastRun = &now
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}
