package dbmodels

import (
	attendanceapimodels "hr-payroll-backend/models/api/attendance"
	"time"

	"github.com/pkg/errors"
)

// Attendance одна запись на сотрудника за день
type Attendance struct {
	BaseModel
	EmployeeRef string    `gorm:"type:varchar(36);index:idx_attendance_day,unique"`
	Employee    *Employee `gorm:"foreignKey:EmployeeRef"`
	WorkDate    string    `gorm:"type:varchar(10);index:idx_attendance_day,unique"` // YYYY-MM-DD
	TimeIn      *time.Time
	TimeOut     *time.Time
}

func (r Attendance) Validate() error {
	if r.EmployeeRef == "" {
		return errors.New("не указан сотрудник")
	}
	if _, err := time.Parse(attendanceapimodels.DateLayout, r.WorkDate); err != nil {
		return errors.New("дата должна быть в формате ГГГГ-ММ-ДД")
	}
	return nil
}

// IsComplete есть и приход, и уход
func (r Attendance) IsComplete() bool {
	return r.TimeIn != nil && r.TimeOut != nil
}

// WorkedHours отработанные часы, уход раньше прихода дает 0
func WorkedHours(timeIn, timeOut *time.Time) float64 {
	if timeIn == nil || timeOut == nil {
		return 0
	}
	hours := timeOut.Sub(*timeIn).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

func (r Attendance) ToModel() attendanceapimodels.AttendanceView {
	result := attendanceapimodels.AttendanceView{
		ID:          r.ID,
		Date:        r.WorkDate,
		WorkedHours: WorkedHours(r.TimeIn, r.TimeOut),
	}
	if r.TimeIn != nil {
		result.TimeIn = r.TimeIn.Format(attendanceapimodels.TimeLayout)
	}
	if r.TimeOut != nil {
		result.TimeOut = r.TimeOut.Format(attendanceapimodels.TimeLayout)
	}
	if r.Employee != nil {
		result.EmployeeID = r.Employee.EmployeeID
		result.EmployeeName = r.Employee.Name
	}
	return result
}
