package dbmodels

import (
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"

	"github.com/pkg/errors"
)

type Employee struct {
	BaseModel
	EmployeeID     string                `gorm:"type:varchar(20);uniqueIndex"`
	Username       string                `gorm:"type:varchar(50);uniqueIndex"`
	Password       string                `gorm:"type:varchar(128)"`
	Name           string                `gorm:"type:varchar(100)"`
	Department     string                `gorm:"type:varchar(100);index"`
	Position       string                `gorm:"type:varchar(100)"`
	SalaryRate     float64               // дневная ставка
	Role           models.UserRole       `gorm:"type:varchar(20)"`
	Status         models.EmployeeStatus `gorm:"type:varchar(20);index"`
	ProfilePicture string                `gorm:"type:varchar(255)"`
	NfcID          string                `gorm:"type:varchar(100);index"`
	QrCodePath     string                `gorm:"type:varchar(255)"`
}

func (r Employee) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("отсутствует табельный номер")
	}
	if r.Username == "" {
		return errors.New("отсутствует логин")
	}
	if !r.Role.IsValid() {
		return errors.New("указана неизвестная роль")
	}
	if !r.Status.IsValid() {
		return errors.New("указан неизвестный статус")
	}
	return nil
}

func (r Employee) IsActive() bool {
	return r.Status == models.EmployeeActive
}

func (r Employee) ToModel() employeeapimodels.EmployeeView {
	return employeeapimodels.EmployeeView{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Username:       r.Username,
		Name:           r.Name,
		Department:     r.Department,
		Position:       r.Position,
		SalaryRate:     r.SalaryRate,
		Role:           r.Role,
		RoleName:       r.Role.ToHuman(),
		Status:         r.Status,
		ProfilePicture: r.ProfilePicture,
		NfcID:          r.NfcID,
		HasQrCode:      r.QrCodePath != "",
	}
}

func (r Employee) ToBrief() employeeapimodels.Brief {
	return employeeapimodels.Brief{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Name:           r.Name,
		Department:     r.Department,
		Position:       r.Position,
		ProfilePicture: r.ProfilePicture,
	}
}
