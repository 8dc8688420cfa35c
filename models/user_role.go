package models

type UserRole string

const (
	AdminRole    UserRole = "Admin"
	HRRole       UserRole = "HR"
	EmployeeRole UserRole = "Employee"
)

var roleHumanName = map[UserRole]string{
	AdminRole:    "Администратор",
	HRRole:       "Специалист HR",
	EmployeeRole: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// IsStaff - роли с доступом к кадровым разделам
func (r UserRole) IsStaff() bool {
	return r == AdminRole || r == HRRole
}

const SystemUser = "Система"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
)

var employeeStatusHumanName = map[EmployeeStatus]string{
	EmployeeActive:   "Работает",
	EmployeeInactive: "Деактивирован",
}

func (r EmployeeStatus) ToHuman() string {
	if human, exist := employeeStatusHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r EmployeeStatus) IsValid() bool {
	_, ok := employeeStatusHumanName[r]
	return ok
}
