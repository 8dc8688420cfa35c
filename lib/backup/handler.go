package backup

import (
	"context"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	backupapimodels "hr-payroll-backend/models/api/backup"
	"time"
)

var ErrNotFound = apperror.NotFound("резервная копия не найдена")

// Provider операции резервного копирования для API
type Provider interface {
	List() ([]backupapimodels.BackupInfo, error)
	Create(ctx context.Context, req backupapimodels.CreateRequest, actor models.Actor) (backupapimodels.CreateResult, error)
	Restore(ctx context.Context, name string, actor models.Actor) error
	Verify(name string) (backupapimodels.VerifyResult, error)
	StartScheduler(actor models.Actor) bool
	StopScheduler(actor models.Actor)
	SchedulerStatus() SchedulerStatus
}

var Instance Provider

type HandlerConfig struct {
	Compress bool
	Interval time.Duration
}

// NewHandler ctx - контекст приложения, в нем работает планировщик, запущенный через API
func NewHandler(ctx context.Context, manager *Manager, scheduler *Scheduler, audit Auditor, cfg HandlerConfig) {
	Instance = handler{
		appCtx:    ctx,
		manager:   manager,
		scheduler: scheduler,
		audit:     audit,
		cfg:       cfg,
	}
}

type handler struct {
	appCtx    context.Context
	manager   *Manager
	scheduler *Scheduler
	audit     Auditor
	cfg       HandlerConfig
}

func (h handler) List() ([]backupapimodels.BackupInfo, error) {
	return h.manager.ListBackups()
}

func (h handler) Create(ctx context.Context, req backupapimodels.CreateRequest, actor models.Actor) (backupapimodels.CreateResult, error) {
	compress := h.cfg.Compress
	if req.Compress != nil {
		compress = *req.Compress
	}
	h.audit.LogActorEvent(models.EventManualBackup, actor, "Запущено ручное резервное копирование")
	return h.manager.CreateFullBackup(ctx, compress, actor)
}

func (h handler) Restore(ctx context.Context, name string, actor models.Actor) error {
	info, err := h.manager.FindBackup(name)
	if err != nil {
		return err
	}
	if info == nil {
		return ErrNotFound
	}
	return h.manager.RestoreBackup(ctx, info.BackupPath, actor)
}

func (h handler) Verify(name string) (backupapimodels.VerifyResult, error) {
	info, err := h.manager.FindBackup(name)
	if err != nil {
		return backupapimodels.VerifyResult{}, err
	}
	if info == nil {
		return backupapimodels.VerifyResult{}, ErrNotFound
	}
	result := backupapimodels.VerifyResult{BackupName: name, Valid: true, Message: "резервная копия прошла проверку"}
	if err = h.manager.VerifyBackupIntegrity(info.BackupPath); err != nil {
		result.Valid = false
		result.Message = err.Error()
	}
	return result, nil
}

func (h handler) StartScheduler(actor models.Actor) bool {
	return h.scheduler.Start(h.appCtx, h.cfg.Interval)
}

func (h handler) StopScheduler(actor models.Actor) {
	h.scheduler.Stop()
}

func (h handler) SchedulerStatus() SchedulerStatus {
	return h.scheduler.Status()
}
