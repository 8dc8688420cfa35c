package initializers

import (
	"context"
	"fmt"
	"hr-payroll-backend/config"
	"hr-payroll-backend/db"
	"hr-payroll-backend/fiberlog"
	applicationhandler "hr-payroll-backend/lib/application"
	applicationstore "hr-payroll-backend/lib/application/store"
	attendancehandler "hr-payroll-backend/lib/attendance"
	attendancestore "hr-payroll-backend/lib/attendance/store"
	authhandler "hr-payroll-backend/lib/auth"
	"hr-payroll-backend/lib/backup"
	chathandler "hr-payroll-backend/lib/chat"
	chatstore "hr-payroll-backend/lib/chat/store"
	employeehandler "hr-payroll-backend/lib/employee"
	employeestore "hr-payroll-backend/lib/employee/store"
	exporthandler "hr-payroll-backend/lib/export"
	xlsexport "hr-payroll-backend/lib/export/xls"
	filestorage "hr-payroll-backend/lib/file-storage"
	filesdbstorage "hr-payroll-backend/lib/file-storage/storage"
	leavehandler "hr-payroll-backend/lib/leave"
	leavestore "hr-payroll-backend/lib/leave/store"
	payrollhandler "hr-payroll-backend/lib/payroll"
	payrollstore "hr-payroll-backend/lib/payroll/store"
	pushhandler "hr-payroll-backend/lib/push"
	pushdatastore "hr-payroll-backend/lib/push/data-store"
	"hr-payroll-backend/lib/rbac"
	securityhandler "hr-payroll-backend/lib/security"
	"hr-payroll-backend/lib/security/audit"
	securitystore "hr-payroll-backend/lib/security/store"
	settingshandler "hr-payroll-backend/lib/settings"
	settingsstore "hr-payroll-backend/lib/settings/store"
	"hr-payroll-backend/lib/smtp"
	initchecker "hr-payroll-backend/lib/utils/init-checker"
	connectionhub "hr-payroll-backend/lib/ws/hub/connection-hub"
	"hr-payroll-backend/models"
	s3client "hr-payroll-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()

	pushStore := pushdatastore.NewInstance(db.DB)
	connectionhub.Init(pushStore)
	pushhandler.NewHandler(pushStore, connectionhub.Instance)

	filestorage.NewHandler(filesdbstorage.NewInstance(db.DB), s3client.Client, config.Conf.Upload.Dir)

	securityStore := securitystore.NewInstance(db.DB)
	audit.NewHandler(securityStore)

	initBackup(ctx)
	securityhandler.NewHandler(securityStore, backupManager, audit.Instance)

	rbac.NewHandler()

	employeeStore := employeestore.NewInstance(db.DB)
	attendanceStore := attendancestore.NewInstance(db.DB)
	payrollStore := payrollstore.NewInstance(db.DB)
	uploadMaxMb := config.Conf.Upload.MaxSizeMb

	settingshandler.NewHandler(settingsstore.NewInstance(db.DB), filestorage.Instance, audit.Instance, uploadMaxMb)
	chathandler.NewHandler(chatstore.NewInstance(db.DB), employeeStore, pushhandler.Instance)
	employeehandler.NewHandler(employeeStore, filestorage.Instance, audit.Instance, chathandler.Instance, uploadMaxMb)
	attendancehandler.NewHandler(attendanceStore, employeeStore)
	payrollhandler.NewHandler(payrollStore, employeeStore, attendanceStore, pushhandler.Instance, audit.Instance,
		settingshandler.Instance, payrollRates())
	leavehandler.NewHandler(leavestore.NewInstance(db.DB), pushhandler.Instance)
	applicationhandler.NewHandler(applicationstore.NewInstance(db.DB), employeeStore, filestorage.Instance,
		pushhandler.Instance, smtp.Instance, uploadMaxMb)
	authhandler.NewHandler(employeeStore, audit.Instance, rbac.Instance)
	xlsexport.NewHandler()
	exporthandler.NewHandler(employeeStore, payrollStore, attendanceStore, xlsexport.Instance)

	initchecker.CheckInit(
		"auth", authhandler.Instance,
		"employee", employeehandler.Instance,
		"attendance", attendancehandler.Instance,
		"payroll", payrollhandler.Instance,
		"leave", leavehandler.Instance,
		"application", applicationhandler.Instance,
		"chat", chathandler.Instance,
		"settings", settingshandler.Instance,
		"security", securityhandler.Instance,
		"backup", backup.Instance,
		"export", exporthandler.Instance,
	)

	db.InitPreload()

	if *config.Conf.Backup.Enabled {
		backup.Instance.StartScheduler(models.SystemActor())
	}
}

var backupManager *backup.Manager

func initBackup(ctx context.Context) {
	cfg := backup.Config{
		Dir:          config.Conf.Backup.Dir,
		MaxBackups:   config.Conf.Backup.MaxBackups,
		AfterRestore: db.ResetConnections,
	}
	if *config.Conf.Backup.S3Enabled {
		if s3client.Client != nil {
			cfg.Offsite = backup.NewS3Offsite(s3client.Client)
		} else {
			log.Warn("копирование в S3 включено, но S3 не настроен")
		}
	}
	backupManager = backup.New(cfg, db.FilePath(), audit.Instance)
	compress := *config.Conf.Backup.Compress
	scheduler := backup.NewScheduler(backupManager, audit.Instance, compress,
		time.Duration(config.Conf.Backup.RetryMinutes)*time.Minute, notifyBackupFailure)
	interval := time.Duration(config.Conf.Backup.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = backup.DefaultInterval
	}
	backup.NewHandler(ctx, backupManager, scheduler, audit.Instance, backup.HandlerConfig{
		Compress: compress,
		Interval: interval,
	})
}

func notifyBackupFailure(err error) {
	notifyAdmins(err)
	to := config.Conf.Backup.NotifyEmail
	if to == "" || !smtp.Instance.IsConfigured() {
		return
	}
	message := fmt.Sprintf("Автоматическое резервное копирование завершилось ошибкой: %s", err.Error())
	if sendErr := smtp.Instance.SendEMail(to, "Ошибка резервного копирования", message); sendErr != nil {
		log.WithError(sendErr).Error("ошибка отправки оповещения о резервном копировании")
	}
}

func notifyAdmins(err error) {
	list, listErr := employeestore.NewInstance(db.DB).ListActive()
	if listErr != nil {
		log.WithError(listErr).Error("ошибка получения администраторов для оповещения")
		return
	}
	for _, rec := range list {
		if rec.Role.IsAdmin() {
			pushhandler.Instance.SendNotification(rec.ID, models.PushBackupFailed, err.Error())
		}
	}
}

func payrollRates() payrollhandler.Rates {
	return payrollhandler.Rates{
		OfficeHoursPerDay:  config.Conf.Payroll.OfficeHoursPerDay,
		OvertimeMultiplier: config.Conf.Payroll.OvertimeMultiplier,
		TaxRate:            config.Conf.Payroll.TaxRate,
		InsuranceRate:      config.Conf.Payroll.InsuranceRate,
		RetirementRate:     config.Conf.Payroll.RetirementRate,
		BonusDaysThreshold: config.Conf.Payroll.BonusDaysThreshold,
		BonusDailyRates:    config.Conf.Payroll.BonusDailyRates,
	}
}
