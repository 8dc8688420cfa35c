package payrollapimodels

import (
	"regexp"

	"github.com/pkg/errors"
)

const PeriodLayout = "2006-01"

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func ValidatePeriod(period string) error {
	if !periodRe.MatchString(period) {
		return errors.New("период должен быть в формате ГГГГ-ММ")
	}
	return nil
}

type GenerateRequest struct {
	Period string `json:"period"` // ГГГГ-ММ, по умолчанию текущий месяц
}

func (r GenerateRequest) Validate() error {
	if r.Period == "" {
		return nil
	}
	return ValidatePeriod(r.Period)
}

type GenerateResult struct {
	Period  string `json:"period"`
	Created int    `json:"created"` // сформировано записей
	Skipped int    `json:"skipped"` // записи за период уже существовали
}

type PayrollView struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Department    string  `json:"department,omitempty"`
	Period        string  `json:"period"`
	ActualDays    int     `json:"actual_days"`
	OvertimeHours float64 `json:"overtime_hours"`
	BaseSalary    float64 `json:"base_salary"`
	Overtime      float64 `json:"overtime"`
	GrossPay      float64 `json:"gross_pay"`
	Deductions    float64 `json:"deductions"`
	Bonuses       float64 `json:"bonuses"`
	NetPay        float64 `json:"net_pay"`
}

type PayrollFilter struct {
	Period      string `json:"period"`
	EmployeeID  string `json:"employee_id"` // табельный номер
	EmployeeRef string `json:"-"`
}

func (r PayrollFilter) Validate() error {
	if r.Period == "" {
		return nil
	}
	return ValidatePeriod(r.Period)
}
