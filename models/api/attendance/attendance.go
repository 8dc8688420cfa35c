package attendanceapimodels

import (
	employeeapimodels "hr-payroll-backend/models/api/employee"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type PunchAction string

const (
	PunchTimeIn  PunchAction = "TIME_IN"
	PunchTimeOut PunchAction = "TIME_OUT"
	PunchNone    PunchAction = "NONE" // за день уже есть приход и уход
)

type PunchRequest struct {
	EmployeeID string `json:"employee_id"` // ручной ввод табельного номера
	ScanData   string `json:"scan_data"`   // данные QR/NFC сканера
}

func (r PunchRequest) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" && strings.TrimSpace(r.ScanData) == "" {
		return errors.New("не указан табельный номер")
	}
	return nil
}

type PunchResult struct {
	Action   PunchAction             `json:"action"`
	Date     string                  `json:"date"`
	Time     string                  `json:"time"`
	TimeIn   string                  `json:"time_in,omitempty"`
	TimeOut  string                  `json:"time_out,omitempty"`
	Message  string                  `json:"message"`
	Employee employeeapimodels.Brief `json:"employee"`
}

type AttendanceView struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	TimeIn       string  `json:"time_in,omitempty"`
	TimeOut      string  `json:"time_out,omitempty"`
	WorkedHours  float64 `json:"worked_hours"`
}

type AttendanceFilter struct {
	EmployeeRef string `json:"-"`           // внутренний ID сотрудника
	EmployeeID  string `json:"employee_id"` // табельный номер
	From        string `json:"from"`        // YYYY-MM-DD
	To          string `json:"to"`          // YYYY-MM-DD
	Limit       int    `json:"limit"`
}

func (r AttendanceFilter) Validate() error {
	if r.From != "" {
		if _, err := time.Parse(DateLayout, r.From); err != nil {
			return errors.New("дата начала должна быть в формате ГГГГ-ММ-ДД")
		}
	}
	if r.To != "" {
		if _, err := time.Parse(DateLayout, r.To); err != nil {
			return errors.New("дата окончания должна быть в формате ГГГГ-ММ-ДД")
		}
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return errors.New("дата начала позже даты окончания")
	}
	return nil
}

func (r AttendanceFilter) GetLimit() int {
	if r.Limit <= 0 || r.Limit > 1000 {
		return 100
	}
	return r.Limit
}
