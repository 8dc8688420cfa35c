package dbmodels

import (
	payrollapimodels "hr-payroll-backend/models/api/payroll"

	"github.com/pkg/errors"
)

// Payroll снимок расчета за период, после создания не пересчитывается
type Payroll struct {
	BaseModel
	EmployeeRef   string    `gorm:"type:varchar(36);index:idx_payroll_period,unique"`
	Employee      *Employee `gorm:"foreignKey:EmployeeRef"`
	Period        string    `gorm:"type:varchar(7);index:idx_payroll_period,unique"`
	ActualDays    int
	OvertimeHours float64
	BaseSalary    float64
	Overtime      float64
	GrossPay      float64
	Deductions    float64
	Bonuses       float64
	NetPay        float64
	GeneratedBy   string `gorm:"type:varchar(36)"`
}

func (r Payroll) Validate() error {
	if r.EmployeeRef == "" {
		return errors.New("не указан сотрудник")
	}
	return payrollapimodels.ValidatePeriod(r.Period)
}

func (r Payroll) ToModel() payrollapimodels.PayrollView {
	result := payrollapimodels.PayrollView{
		ID:            r.ID,
		Period:        r.Period,
		ActualDays:    r.ActualDays,
		OvertimeHours: r.OvertimeHours,
		BaseSalary:    r.BaseSalary,
		Overtime:      r.Overtime,
		GrossPay:      r.GrossPay,
		Deductions:    r.Deductions,
		Bonuses:       r.Bonuses,
		NetPay:        r.NetPay,
	}
	if r.Employee != nil {
		result.EmployeeID = r.Employee.EmployeeID
		result.EmployeeName = r.Employee.Name
		result.Department = r.Employee.Department
	}
	return result
}
