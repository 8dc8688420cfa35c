package securityapimodels

import (
	"hr-payroll-backend/models"
	backupapimodels "hr-payroll-backend/models/api/backup"
	"time"
)

type LogView struct {
	ID          string               `json:"id"`
	EventType   models.SecurityEvent `json:"event_type"`
	UserID      string               `json:"user_id,omitempty"`
	UserName    string               `json:"user_name,omitempty"`
	IPAddress   string               `json:"ip_address"`
	UserAgent   string               `json:"user_agent,omitempty"`
	Description string               `json:"description"`
	Timestamp   time.Time            `json:"timestamp"`
}

type DayStats struct {
	Logins      int64 `json:"logins"`
	FailedLogin int64 `json:"failed_logins"`
	Timeouts    int64 `json:"timeouts"`
	WeekEvents  int64 `json:"week_events"`
	ActiveUsers int64 `json:"active_users"`
}

type Dashboard struct {
	RecentLogs    []LogView                    `json:"recent_logs"`
	Stats         DayStats                     `json:"stats"`
	RecentBackups []backupapimodels.BackupInfo `json:"recent_backups"`
}

type HourlyLogins struct {
	Hour    string `json:"hour"` // YYYY-MM-DD HH:00
	Success int64  `json:"success"`
	Failed  int64  `json:"failed"`
}

type EventCount struct {
	EventType models.SecurityEvent `json:"event_type"`
	Count     int64                `json:"count"`
}

type Stats struct {
	HourlyLogins []HourlyLogins `json:"hourly_logins"`
	EventTypes   []EventCount   `json:"event_types"`
}

type SuspiciousIP struct {
	IPAddress string `json:"ip_address"`
	Attempts  int64  `json:"attempts"`
}

type AlertLevel string

const (
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

type SystemStatus struct {
	DatabaseSizeBytes int64          `json:"database_size_bytes"`
	SuspiciousIPs     []SuspiciousIP `json:"suspicious_ips"`
	LastBackupTime    *time.Time     `json:"last_backup_time,omitempty"`
	BackupCount       int            `json:"backup_count"`
	Alerts            []Alert        `json:"alerts"`
}

type ClearResult struct {
	Deleted int64 `json:"deleted"`
}
