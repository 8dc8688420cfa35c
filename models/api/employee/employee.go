package employeeapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	apimodels "hr-payroll-backend/models/api"

	"github.com/pkg/errors"
)

type EmployeeData struct {
	Username   string          `json:"username" validate:"required,min=3,max=50,username"` // Логин
	Name       string          `json:"name" validate:"required,min=2,max=100"`             // ФИО
	Department string          `json:"department" validate:"required,min=2,max=50"`        // Отдел
	Position   string          `json:"position" validate:"max=100"`                        // Должность
	SalaryRate float64         `json:"salary_rate" validate:"gte=0,lte=1000000"`           // Дневная ставка
	Role       models.UserRole `json:"role" validate:"required"`                           // Admin/HR/Employee
	NfcID      string          `json:"nfc_id" validate:"max=100"`                          // ID NFC карты (необязательно)
}

func (r EmployeeData) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if !r.Role.IsValid() {
		return errors.New("указана неизвестная роль")
	}
	return nil
}

type CreateEmployee struct {
	EmployeeData
	Password string `json:"password"`
}

func (r CreateEmployee) Validate() error {
	if err := r.EmployeeData.Validate(); err != nil {
		return err
	}
	return validation.Password(r.Password, nil)
}

type UpdateEmployee struct {
	EmployeeData
	Password string                `json:"password"` // пустое значение - пароль не меняется
	Status   models.EmployeeStatus `json:"status"`
}

func (r UpdateEmployee) Validate() error {
	if err := r.EmployeeData.Validate(); err != nil {
		return err
	}
	if r.Status != "" && !r.Status.IsValid() {
		return errors.New("указан неизвестный статус")
	}
	if r.Password != "" {
		return validation.Password(r.Password, nil)
	}
	return nil
}

type EmployeeView struct {
	ID             string                `json:"id"`
	EmployeeID     string                `json:"employee_id"`
	Username       string                `json:"username"`
	Name           string                `json:"name"`
	Department     string                `json:"department"`
	Position       string                `json:"position"`
	SalaryRate     float64               `json:"salary_rate"`
	Role           models.UserRole       `json:"role"`
	RoleName       string                `json:"role_name"`
	Status         models.EmployeeStatus `json:"status"`
	ProfilePicture string                `json:"profile_picture,omitempty"`
	NfcID          string                `json:"nfc_id,omitempty"`
	HasQrCode      bool                  `json:"has_qr_code"`
}

type CreateResult struct {
	Employee EmployeeView `json:"employee"`
	Warning  string       `json:"warning,omitempty"` // например, не удалось сформировать QR код
}

type EmployeeFilter struct {
	Search     string                `json:"search"`
	Department string                `json:"department"`
	Status     models.EmployeeStatus `json:"status"`
	Role       models.UserRole       `json:"role"`
}

type ListRequest struct {
	EmployeeFilter
	apimodels.Pagination
}

func (r ListRequest) Validate() error {
	return nil
}

// Brief краткая карточка для киоска и чата
type Brief struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}
