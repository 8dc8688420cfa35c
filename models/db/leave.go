package dbmodels

import (
	"hr-payroll-backend/models"
	leaveapimodels "hr-payroll-backend/models/api/leave"
	"time"

	"github.com/pkg/errors"
)

type Leave struct {
	BaseModel
	EmployeeRef string               `gorm:"type:varchar(36);index"`
	Employee    *Employee            `gorm:"foreignKey:EmployeeRef"`
	Type        string               `gorm:"type:varchar(50)"`
	Duration    models.LeaveDuration `gorm:"type:varchar(10)"`
	StartDate   string               `gorm:"type:varchar(10)"`
	EndDate     string               `gorm:"type:varchar(10)"`
	Reason      string               `gorm:"type:varchar(500)"`
	Status      models.LeaveStatus   `gorm:"type:varchar(20);index"`
	DecidedBy   string               `gorm:"type:varchar(36)"`
	DecidedAt   *time.Time
}

func (r Leave) Validate() error {
	if r.EmployeeRef == "" {
		return errors.New("не указан сотрудник")
	}
	if !r.Duration.IsValid() {
		return errors.New("продолжительность должна быть Full или Half")
	}
	return nil
}

func (r Leave) ToModel() leaveapimodels.LeaveView {
	result := leaveapimodels.LeaveView{
		ID:         r.ID,
		Type:       r.Type,
		Duration:   r.Duration,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
		Status:     r.Status,
		StatusName: r.Status.ToHuman(),
	}
	if r.Employee != nil {
		result.EmployeeID = r.Employee.EmployeeID
		result.EmployeeName = r.Employee.Name
	}
	return result
}
