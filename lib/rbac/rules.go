package rbac

import (
	"hr-payroll-backend/models"
)

var (
	AdminRoleSet   = []models.UserRole{models.AdminRole}
	AdminHrRoleSet = []models.UserRole{models.AdminRole, models.HRRole}
	AllRoles       = []models.UserRole{models.AdminRole, models.HRRole, models.EmployeeRole}
)

func (i *impl) initRules() {
	i.profile()
	i.employees()
	i.attendance()
	i.payroll()
	i.leaves()
	i.applications()
	i.chat()
	i.settings()
	i.security()
	i.backups()
	i.export()
}

func (i *impl) profile() {
	i.RegisterRule(models.ProfileModule, models.SelfPermission, AllRoles, "/api/v1/auth/me [get]", nil)
	i.RegisterRule(models.ProfileModule, models.SelfPermission, AllRoles, "/api/v1/auth/logout [post]", nil)
	i.RegisterRule(models.ProfileModule, models.SelfPermission, AllRoles, "/api/v1/auth/change_password [put]", nil)
	i.RegisterRule(models.ProfileModule, models.SelfPermission, AllRoles, "/api/v1/ws [get]", nil)
}

func (i *impl) employees() {
	// VIEW
	i.RegisterRule(models.EmployeesModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/employees/list [post]", nil)
	i.RegisterRule(models.EmployeesModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/employees/{id} [get]", nil)
	i.RegisterRule(models.EmployeesModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/employees/{id}/qr [get]", nil)
	// фото нужно всем для чата
	i.RegisterRule(models.EmployeesModule, models.ViewPermission, AllRoles, "/api/v1/employees/{id}/photo [get]", nil)
	// CREATE/EDIT
	i.RegisterRule(models.EmployeesModule, models.CreatePermission, AdminHrRoleSet, "/api/v1/employees [post]", nil)
	i.RegisterRule(models.EmployeesModule, models.EditPermission, AdminHrRoleSet, "/api/v1/employees/{id} [put]", nil)
	i.RegisterRule(models.EmployeesModule, models.EditPermission, AdminHrRoleSet, "/api/v1/employees/{id} [delete]", nil)
	i.RegisterRule(models.EmployeesModule, models.EditPermission, AdminHrRoleSet, "/api/v1/employees/{id}/photo [post]", nil)
}

func (i *impl) attendance() {
	i.RegisterRule(models.AttendanceModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/attendance/list [post]", nil)
	i.RegisterRule(models.AttendanceModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/attendance/today_count [get]", nil)
	i.RegisterRule(models.AttendanceModule, models.SelfPermission, AllRoles, "/api/v1/attendance/my [post]", nil)
}

func (i *impl) payroll() {
	i.RegisterRule(models.PayrollModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/payroll/list [post]", nil)
	i.RegisterRule(models.PayrollModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/payroll/rates [get]", nil)
	i.RegisterRule(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/payroll/generate [post]", nil)
	i.RegisterRule(models.PayrollModule, models.SelfPermission, AllRoles, "/api/v1/payroll/my [get]", nil)
	// сотрудник получает только свой расчетный лист, проверка в обработчике
	i.RegisterRule(models.PayrollModule, models.SelfPermission, AllRoles, "/api/v1/payroll/{id}/payslip [get]", nil)
}

func (i *impl) leaves() {
	i.RegisterRule(models.LeaveModule, models.SelfPermission, AllRoles, "/api/v1/leaves [post]", nil)
	i.RegisterRule(models.LeaveModule, models.SelfPermission, AllRoles, "/api/v1/leaves/my [get]", nil)
	i.RegisterRule(models.LeaveModule, models.SelfPermission, AllRoles, "/api/v1/leaves/stats [get]", nil)
	i.RegisterRule(models.LeaveModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/leaves [get]", nil)
	i.RegisterRule(models.LeaveModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/leaves/pending [get]", nil)
	i.RegisterRule(models.LeaveModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/leaves/{id}/decide [put]", nil)
}

func (i *impl) applications() {
	i.RegisterRule(models.ApplicationModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/applications [get]", nil)
	i.RegisterRule(models.ApplicationModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/applications/pending_count [get]", nil)
	i.RegisterRule(models.ApplicationModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/applications/{id} [get]", nil)
	i.RegisterRule(models.ApplicationModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/applications/{id}/resume [get]", nil)
	i.RegisterRule(models.ApplicationModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/applications/{id}/status [put]", nil)
}

func (i *impl) chat() {
	i.RegisterRule(models.ChatModule, models.ViewPermission, AllRoles, "/api/v1/chat/rooms [get]", nil)
	i.RegisterRule(models.ChatModule, models.ViewPermission, AllRoles, "/api/v1/chat/rooms/{id} [get]", nil)
	i.RegisterRule(models.ChatModule, models.ViewPermission, AllRoles, "/api/v1/chat/rooms/{id}/messages [get]", nil)
	i.RegisterRule(models.ChatModule, models.CreatePermission, AllRoles, "/api/v1/chat/rooms [post]", nil)
	i.RegisterRule(models.ChatModule, models.CreatePermission, AllRoles, "/api/v1/chat/rooms/join [post]", nil)
	i.RegisterRule(models.ChatModule, models.CreatePermission, AllRoles, "/api/v1/chat/direct/{id} [post]", nil)
	i.RegisterRule(models.ChatModule, models.CreatePermission, AllRoles, "/api/v1/chat/rooms/{id}/messages [post]", nil)
}

func (i *impl) settings() {
	i.RegisterRule(models.SettingsModule, models.ViewPermission, AllRoles, "/api/v1/settings/logo [get]", nil)
	i.RegisterRule(models.SettingsModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/settings [get]", nil)
	i.RegisterRule(models.SettingsModule, models.EditPermission, AdminHrRoleSet, "/api/v1/settings [put]", nil)
	i.RegisterRule(models.SettingsModule, models.EditPermission, AdminHrRoleSet, "/api/v1/settings/logo [post]", nil)
}

func (i *impl) security() {
	i.RegisterRule(models.SecurityModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/dashboard [get]", nil)
	i.RegisterRule(models.SecurityModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/stats [get]", nil)
	i.RegisterRule(models.SecurityModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/status [get]", nil)
	i.RegisterRule(models.SecurityModule, models.ManagePermission, AdminRoleSet, "/api/v1/security/logs [delete]", nil)
}

func (i *impl) backups() {
	i.RegisterRule(models.BackupModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/backups [get]", nil)
	i.RegisterRule(models.BackupModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/backups/{name}/verify [get]", nil)
	i.RegisterRule(models.BackupModule, models.ViewPermission, AdminRoleSet, "/api/v1/security/backups/scheduler [get]", nil)
	i.RegisterRule(models.BackupModule, models.ManagePermission, AdminRoleSet, "/api/v1/security/backups [post]", nil)
	i.RegisterRule(models.BackupModule, models.ManagePermission, AdminRoleSet, "/api/v1/security/backups/{name}/restore [post]", nil)
	i.RegisterRule(models.BackupModule, models.ManagePermission, AdminRoleSet, "/api/v1/security/backups/scheduler/start [post]", nil)
	i.RegisterRule(models.BackupModule, models.ManagePermission, AdminRoleSet, "/api/v1/security/backups/scheduler/stop [post]", nil)
}

func (i *impl) export() {
	i.RegisterRule(models.ExportModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/export/employees [get]", nil)
	i.RegisterRule(models.ExportModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/export/payroll [get]", nil)
	i.RegisterRule(models.ExportModule, models.ViewPermission, AdminHrRoleSet, "/api/v1/export/attendance [get]", nil)
}
