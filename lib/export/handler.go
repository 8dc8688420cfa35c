package exporthandler

import (
	"bytes"
	attendancestore "hr-payroll-backend/lib/attendance/store"
	employeestore "hr-payroll-backend/lib/employee/store"
	xlsexport "hr-payroll-backend/lib/export/xls"
	payrollstore "hr-payroll-backend/lib/payroll/store"
	"hr-payroll-backend/lib/utils/apperror"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"time"

	"github.com/pkg/errors"
)

// Provider отчеты xlsx для скачивания
type Provider interface {
	Employees() (body *bytes.Buffer, fileName string, err error)
	Payroll(period string) (body *bytes.Buffer, fileName string, err error)
	Attendance(filter attendanceapimodels.AttendanceFilter) (body *bytes.Buffer, fileName string, err error)
}

var Instance Provider

func NewHandler(employees employeestore.Provider, payroll payrollstore.Provider, attendance attendancestore.Provider, xls xlsexport.Provider) {
	Instance = impl{
		employees:  employees,
		payroll:    payroll,
		attendance: attendance,
		xls:        xls,
		now:        time.Now,
	}
}

type impl struct {
	employees  employeestore.Provider
	payroll    payrollstore.Provider
	attendance attendancestore.Provider
	xls        xlsexport.Provider
	now        func() time.Time
}

func (i impl) Employees() (*bytes.Buffer, string, error) {
	list, err := i.employees.ListActive()
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	views := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		views = append(views, rec.ToModel())
	}
	body, err := i.xls.ExportEmployees(views)
	if err != nil {
		return nil, "", err
	}
	return body, "employees_" + i.now().Format("20060102") + ".xlsx", nil
}

func (i impl) Payroll(period string) (*bytes.Buffer, string, error) {
	filter := payrollapimodels.PayrollFilter{Period: period}
	if err := filter.Validate(); err != nil {
		return nil, "", apperror.BadRequest(err.Error())
	}
	list, err := i.payroll.List(filter)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения расчетов зарплаты")
	}
	views := make([]payrollapimodels.PayrollView, 0, len(list))
	for _, rec := range list {
		views = append(views, rec.ToModel())
	}
	body, err := i.xls.ExportPayroll(views)
	if err != nil {
		return nil, "", err
	}
	fileName := "payroll_all.xlsx"
	if period != "" {
		fileName = "payroll_" + period + ".xlsx"
	}
	return body, fileName, nil
}

func (i impl) Attendance(filter attendanceapimodels.AttendanceFilter) (*bytes.Buffer, string, error) {
	if err := filter.Validate(); err != nil {
		return nil, "", apperror.BadRequest(err.Error())
	}
	list, err := i.attendance.List(filter)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения посещаемости")
	}
	views := make([]attendanceapimodels.AttendanceView, 0, len(list))
	for _, rec := range list {
		views = append(views, rec.ToModel())
	}
	body, err := i.xls.ExportAttendance(views)
	if err != nil {
		return nil, "", err
	}
	return body, "attendance_" + i.now().Format("20060102") + ".xlsx", nil
}
