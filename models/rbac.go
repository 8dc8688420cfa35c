package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	EmployeesModule   Module = "EMPLOYEES"
	AttendanceModule  Module = "ATTENDANCE"
	PayrollModule     Module = "PAYROLL"
	LeaveModule       Module = "LEAVE"
	ApplicationModule Module = "APPLICATION"
	ChatModule        Module = "CHAT"
	SettingsModule    Module = "SETTINGS"
	SecurityModule    Module = "SECURITY"
	BackupModule      Module = "BACKUP"
	ExportModule      Module = "EXPORT"
	ProfileModule     Module = "PROFILE"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	SelfPermission   Permission = "SELF"
)
