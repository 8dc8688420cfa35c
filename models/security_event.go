package models

type SecurityEvent string

const (
	EventLoginSuccess   SecurityEvent = "LOGIN_SUCCESS"
	EventLoginFailed    SecurityEvent = "LOGIN_FAILED"
	EventLogout         SecurityEvent = "LOGOUT"
	EventSessionTimeout SecurityEvent = "SESSION_TIMEOUT"
	EventPasswordChange SecurityEvent = "PASSWORD_CHANGED"

	EventBackupCreated       SecurityEvent = "BACKUP_CREATED"
	EventBackupFailed        SecurityEvent = "BACKUP_FAILED"
	EventBackupCleanup       SecurityEvent = "BACKUP_CLEANUP"
	EventBackupCleanupFailed SecurityEvent = "BACKUP_CLEANUP_FAILED"
	EventDatabaseRestored    SecurityEvent = "DATABASE_RESTORED"
	EventRestoreFailed       SecurityEvent = "RESTORE_FAILED"
	EventAutoBackupStarted   SecurityEvent = "AUTO_BACKUP_STARTED"
	EventAutoBackupStopped   SecurityEvent = "AUTO_BACKUP_STOPPED"
	EventAutoBackupSuccess   SecurityEvent = "AUTO_BACKUP_SUCCESS"
	EventAutoBackupFailed    SecurityEvent = "AUTO_BACKUP_FAILED"
	EventAutoBackupError     SecurityEvent = "AUTO_BACKUP_ERROR"
	EventManualBackup        SecurityEvent = "MANUAL_BACKUP"

	EventSecurityLogsCleared SecurityEvent = "SECURITY_LOGS_CLEARED"
	EventPayrollGenerated    SecurityEvent = "PAYROLL_GENERATED"
	EventSettingsUpdated     SecurityEvent = "SETTINGS_UPDATED"
	EventEmployeeCreated     SecurityEvent = "EMPLOYEE_CREATED"
	EventEmployeeUpdated     SecurityEvent = "EMPLOYEE_UPDATED"
	EventEmployeeDeactivated SecurityEvent = "EMPLOYEE_DEACTIVATED"
)

// SystemSource значение ip_address для событий фоновых задач
const SystemSource = "system"
