package securityhandler

import (
	"fmt"
	"hr-payroll-backend/lib/security/audit"
	securitystore "hr-payroll-backend/lib/security/store"
	"hr-payroll-backend/models"
	backupapimodels "hr-payroll-backend/models/api/backup"
	securityapimodels "hr-payroll-backend/models/api/security"
	dbmodels "hr-payroll-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	recentLogsLimit      = 50
	recentBackupsLimit   = 5
	keepLogsOnClear      = 1000
	suspiciousThreshold  = 5
	suspiciousWindow     = time.Hour
	backupAgeWarning     = 48 * time.Hour
	hourlyStatsHours     = 24
	hourlyStatsLayout    = "2006-01-02 15:00"
	eventStatsWindowDays = 7
)

type BackupLister interface {
	ListBackups() ([]backupapimodels.BackupInfo, error)
}

type Provider interface {
	Dashboard() (securityapimodels.Dashboard, error)
	ClearLogs(actor models.Actor) (securityapimodels.ClearResult, error)
	Stats() (securityapimodels.Stats, error)
	SystemStatus() (securityapimodels.SystemStatus, error)
}

var Instance Provider

func NewHandler(store securitystore.Provider, backups BackupLister, auditor audit.Provider) {
	Instance = impl{
		store:   store,
		backups: backups,
		audit:   auditor,
		now:     time.Now,
	}
}

type impl struct {
	store   securitystore.Provider
	backups BackupLister
	audit   audit.Provider
	now     func() time.Time
}

func (i impl) Dashboard() (result securityapimodels.Dashboard, err error) {
	now := i.now()
	dayAgo := now.Add(-24 * time.Hour)
	logs, err := i.store.Recent(recentLogsLimit)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения журнала событий")
	}
	result.RecentLogs = make([]securityapimodels.LogView, 0, len(logs))
	for _, rec := range logs {
		result.RecentLogs = append(result.RecentLogs, rec.ToModel())
	}
	if result.Stats.Logins, err = i.store.CountEventsSince(models.EventLoginSuccess, dayAgo); err != nil {
		return result, errors.Wrap(err, "ошибка подсчета входов")
	}
	if result.Stats.FailedLogin, err = i.store.CountEventsSince(models.EventLoginFailed, dayAgo); err != nil {
		return result, errors.Wrap(err, "ошибка подсчета неудачных входов")
	}
	if result.Stats.Timeouts, err = i.store.CountEventsSince(models.EventSessionTimeout, dayAgo); err != nil {
		return result, errors.Wrap(err, "ошибка подсчета истекших сессий")
	}
	if result.Stats.WeekEvents, err = i.store.CountSince(now.AddDate(0, 0, -7)); err != nil {
		return result, errors.Wrap(err, "ошибка подсчета событий")
	}
	if result.Stats.ActiveUsers, err = i.store.ActiveUsersSince(dayAgo); err != nil {
		return result, errors.Wrap(err, "ошибка подсчета активных пользователей")
	}
	result.RecentBackups = []backupapimodels.BackupInfo{}
	if i.backups != nil {
		list, err := i.backups.ListBackups()
		if err != nil {
			log.WithError(err).Warn("ошибка получения списка резервных копий")
		} else {
			if len(list) > recentBackupsLimit {
				list = list[:recentBackupsLimit]
			}
			result.RecentBackups = list
		}
	}
	return result, nil
}

func (i impl) ClearLogs(actor models.Actor) (securityapimodels.ClearResult, error) {
	deleted, err := i.store.DeleteExceptNewest(keepLogsOnClear)
	if err != nil {
		log.WithError(err).Error("ошибка очистки журнала безопасности")
		return securityapimodels.ClearResult{}, errors.Wrap(err, "ошибка очистки журнала безопасности")
	}
	i.audit.LogActorEvent(models.EventSecurityLogsCleared, actor,
		fmt.Sprintf("Удалено записей журнала: %d, сохранено последних: %d", deleted, keepLogsOnClear))
	return securityapimodels.ClearResult{Deleted: deleted}, nil
}

func (i impl) Stats() (result securityapimodels.Stats, err error) {
	now := i.now()
	logins, err := i.store.LoginsSince(now.Add(-hourlyStatsHours * time.Hour))
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения статистики входов")
	}
	result.HourlyLogins = hourlyLogins(now, logins)
	result.EventTypes, err = i.store.EventCountsSince(now.AddDate(0, 0, -eventStatsWindowDays))
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения статистики событий")
	}
	return result, nil
}

func (i impl) SystemStatus() (result securityapimodels.SystemStatus, err error) {
	now := i.now()
	if result.DatabaseSizeBytes, err = i.store.DatabaseSize(); err != nil {
		log.WithError(err).Warn("ошибка получения размера БД")
	}
	result.SuspiciousIPs, err = i.store.FailedLoginIPs(now.Add(-suspiciousWindow), suspiciousThreshold)
	if err != nil {
		return result, errors.Wrap(err, "ошибка поиска подозрительных адресов")
	}
	var backups []backupapimodels.BackupInfo
	if i.backups != nil {
		if backups, err = i.backups.ListBackups(); err != nil {
			return result, errors.Wrap(err, "ошибка получения списка резервных копий")
		}
	}
	result.BackupCount = len(backups)
	if len(backups) > 0 {
		last := backups[0].BackupTime
		result.LastBackupTime = &last
	}
	result.Alerts = buildAlerts(now, result)
	return result, nil
}

func buildAlerts(now time.Time, status securityapimodels.SystemStatus) []securityapimodels.Alert {
	alerts := []securityapimodels.Alert{}
	if status.LastBackupTime == nil {
		alerts = append(alerts, securityapimodels.Alert{
			Level:   securityapimodels.AlertDanger,
			Message: "Резервные копии отсутствуют",
		})
	} else if now.Sub(*status.LastBackupTime) > backupAgeWarning {
		alerts = append(alerts, securityapimodels.Alert{
			Level:   securityapimodels.AlertWarning,
			Message: "Последняя резервная копия создана более 2 дней назад",
		})
	}
	if len(status.SuspiciousIPs) > 0 {
		alerts = append(alerts, securityapimodels.Alert{
			Level:   securityapimodels.AlertWarning,
			Message: fmt.Sprintf("Адресов с многочисленными неудачными входами за последний час: %d", len(status.SuspiciousIPs)),
		})
	}
	return alerts
}

// hourlyLogins 24 часовых интервала, последний - текущий час
func hourlyLogins(now time.Time, logins []dbmodels.SecurityLog) []securityapimodels.HourlyLogins {
	start := now.Truncate(time.Hour).Add(-(hourlyStatsHours - 1) * time.Hour)
	result := make([]securityapimodels.HourlyLogins, hourlyStatsHours)
	for h := range result {
		result[h].Hour = start.Add(time.Duration(h) * time.Hour).Format(hourlyStatsLayout)
	}
	for _, rec := range logins {
		idx := int(rec.CreatedAt.Sub(start) / time.Hour)
		if rec.CreatedAt.Before(start) || idx >= hourlyStatsHours {
			continue
		}
		switch rec.EventType {
		case models.EventLoginSuccess:
			result[idx].Success++
		case models.EventLoginFailed:
			result[idx].Failed++
		}
	}
	return result
}
