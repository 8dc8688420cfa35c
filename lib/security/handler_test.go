package securityhandler

import (
	"hr-payroll-backend/models"
	backupapimodels "hr-payroll-backend/models/api/backup"
	securityapimodels "hr-payroll-backend/models/api/security"
	dbmodels "hr-payroll-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	logs    []dbmodels.SecurityLog
	deleted int64
	ips     []securityapimodels.SuspiciousIP
}

func (f *fakeStore) Create(rec dbmodels.SecurityLog) error {
	f.logs = append(f.logs, rec)
	return nil
}

func (f *fakeStore) Recent(limit int) ([]dbmodels.SecurityLog, error) {
	if len(f.logs) > limit {
		return f.logs[:limit], nil
	}
	return f.logs, nil
}

func (f *fakeStore) CountEventsSince(event models.SecurityEvent, since time.Time) (cnt int64, err error) {
	for _, rec := range f.logs {
		if rec.EventType == event && !rec.CreatedAt.Before(since) {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeStore) CountSince(since time.Time) (cnt int64, err error) {
	for _, rec := range f.logs {
		if !rec.CreatedAt.Before(since) {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeStore) ActiveUsersSince(since time.Time) (int64, error) {
	users := map[string]bool{}
	for _, rec := range f.logs {
		if rec.EventType == models.EventLoginSuccess && !rec.CreatedAt.Before(since) {
			users[rec.UserID] = true
		}
	}
	return int64(len(users)), nil
}

func (f *fakeStore) LoginsSince(since time.Time) (list []dbmodels.SecurityLog, err error) {
	for _, rec := range f.logs {
		if !rec.CreatedAt.Before(since) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) EventCountsSince(since time.Time) ([]securityapimodels.EventCount, error) {
	return []securityapimodels.EventCount{{EventType: models.EventLoginSuccess, Count: 2}}, nil
}

func (f *fakeStore) FailedLoginIPs(since time.Time, threshold int) ([]securityapimodels.SuspiciousIP, error) {
	return f.ips, nil
}

func (f *fakeStore) DeleteExceptNewest(keep int) (int64, error) {
	return f.deleted, nil
}

func (f *fakeStore) DatabaseSize() (int64, error) {
	return 4096, nil
}

type fakeBackups struct {
	list []backupapimodels.BackupInfo
}

func (f fakeBackups) ListBackups() ([]backupapimodels.BackupInfo, error) {
	return f.list, nil
}

type fakeAudit struct {
	events []models.SecurityEvent
}

func (f *fakeAudit) LogEvent(event models.SecurityEvent, userID, ip, userAgent, description string) {
	f.events = append(f.events, event)
}

func (f *fakeAudit) LogActorEvent(event models.SecurityEvent, actor models.Actor, description string) {
	f.events = append(f.events, event)
}

func (f *fakeAudit) LogSystemEvent(event models.SecurityEvent, description string) {
	f.events = append(f.events, event)
}

func logRec(event models.SecurityEvent, userID string, at time.Time) dbmodels.SecurityLog {
	rec := dbmodels.SecurityLog{EventType: event, UserID: userID}
	rec.CreatedAt = at
	return rec
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	store := &fakeStore{logs: []dbmodels.SecurityLog{
		logRec(models.EventLoginSuccess, "u1", now.Add(-time.Hour)),
		logRec(models.EventLoginSuccess, "u1", now.Add(-2*time.Hour)),
		logRec(models.EventLoginSuccess, "u2", now.Add(-3*time.Hour)),
		logRec(models.EventLoginFailed, "", now.Add(-time.Minute)),
		logRec(models.EventSessionTimeout, "u2", now.Add(-30*time.Hour)),
	}}
	backups := fakeBackups{}
	for d := 0; d < 7; d++ {
		backups.list = append(backups.list, backupapimodels.BackupInfo{BackupName: "b"})
	}
	i := impl{store: store, backups: backups, audit: &fakeAudit{}, now: func() time.Time { return now }}

	result, err := i.Dashboard()
	require.NoError(t, err)
	require.Len(t, result.RecentLogs, 5)
	require.EqualValues(t, 3, result.Stats.Logins)
	require.EqualValues(t, 1, result.Stats.FailedLogin)
	require.EqualValues(t, 0, result.Stats.Timeouts)
	require.EqualValues(t, 5, result.Stats.WeekEvents)
	require.EqualValues(t, 2, result.Stats.ActiveUsers)
	require.Len(t, result.RecentBackups, 5)
}

func TestStats(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	store := &fakeStore{logs: []dbmodels.SecurityLog{
		logRec(models.EventLoginSuccess, "u1", now.Add(-10*time.Minute)),
		logRec(models.EventLoginFailed, "", now.Add(-20*time.Minute)),
		logRec(models.EventLoginSuccess, "u1", now.Add(-23*time.Hour)),
	}}
	i := impl{store: store, now: func() time.Time { return now }}
	result, err := i.Stats()
	require.NoError(t, err)
	require.Len(t, result.HourlyLogins, 24)
	last := result.HourlyLogins[23]
	require.Equal(t, "2024-05-10 12:00", last.Hour)
	require.EqualValues(t, 1, last.Success)
	require.EqualValues(t, 1, last.Failed)
	require.Equal(t, "2024-05-09 13:00", result.HourlyLogins[0].Hour)
	require.EqualValues(t, 1, result.HourlyLogins[0].Success)
	require.Len(t, result.EventTypes, 1)
}

func TestSystemStatus(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	t.Run("нет копий", func(t *testing.T) {
		i := impl{store: &fakeStore{}, backups: fakeBackups{}, now: func() time.Time { return now }}
		result, err := i.SystemStatus()
		require.NoError(t, err)
		require.EqualValues(t, 4096, result.DatabaseSizeBytes)
		require.Nil(t, result.LastBackupTime)
		require.Len(t, result.Alerts, 1)
		require.Equal(t, securityapimodels.AlertDanger, result.Alerts[0].Level)
	})
	t.Run("старая копия и подозрительные адреса", func(t *testing.T) {
		old := backupapimodels.BackupInfo{}
		old.BackupTime = now.Add(-72 * time.Hour)
		store := &fakeStore{ips: []securityapimodels.SuspiciousIP{{IPAddress: "10.0.0.1", Attempts: 7}}}
		i := impl{store: store, backups: fakeBackups{list: []backupapimodels.BackupInfo{old}}, now: func() time.Time { return now }}
		result, err := i.SystemStatus()
		require.NoError(t, err)
		require.Equal(t, 1, result.BackupCount)
		require.Len(t, result.Alerts, 2)
		require.Equal(t, securityapimodels.AlertWarning, result.Alerts[0].Level)
	})
	t.Run("свежая копия", func(t *testing.T) {
		fresh := backupapimodels.BackupInfo{}
		fresh.BackupTime = now.Add(-time.Hour)
		i := impl{store: &fakeStore{}, backups: fakeBackups{list: []backupapimodels.BackupInfo{fresh}}, now: func() time.Time { return now }}
		result, err := i.SystemStatus()
		require.NoError(t, err)
		require.Empty(t, result.Alerts)
	})
}

func TestClearLogs(t *testing.T) {
	auditor := &fakeAudit{}
	i := impl{store: &fakeStore{deleted: 12}, audit: auditor, now: time.Now}
	result, err := i.ClearLogs(models.Actor{UserID: "admin"})
	require.NoError(t, err)
	require.EqualValues(t, 12, result.Deleted)
	require.Equal(t, []models.SecurityEvent{models.EventSecurityLogsCleared}, auditor.events)
}
