package xlsexport

import (
	"bytes"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	payrollapimodels "hr-payroll-backend/models/api/payroll"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportEmployees(list []employeeapimodels.EmployeeView) (*bytes.Buffer, error)
	ExportPayroll(list []payrollapimodels.PayrollView) (*bytes.Buffer, error)
	ExportAttendance(list []attendanceapimodels.AttendanceView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var (
	employeeHeaders   = []string{"Табельный номер", "ФИО", "Логин", "Отдел", "Должность", "Дневная ставка", "Роль", "Статус"}
	payrollHeaders    = []string{"Табельный номер", "ФИО", "Отдел", "Период", "Дней", "Переработка, ч", "Оклад", "Сверхурочные", "Начислено", "Удержания", "Премия", "К выплате"}
	attendanceHeaders = []string{"Табельный номер", "ФИО", "Дата", "Приход", "Уход", "Отработано, ч"}
)

// rowWriter значения одной строки таблицы в порядке заголовков
type rowWriter[T any] func(item T) []interface{}

func (i impl) ExportEmployees(list []employeeapimodels.EmployeeView) (*bytes.Buffer, error) {
	return writeSheet("Сотрудники", employeeHeaders, list, func(item employeeapimodels.EmployeeView) []interface{} {
		return []interface{}{
			item.EmployeeID,
			item.Name,
			item.Username,
			item.Department,
			item.Position,
			item.SalaryRate,
			item.Role.ToHuman(),
			item.Status.ToHuman(),
		}
	})
}

func (i impl) ExportPayroll(list []payrollapimodels.PayrollView) (*bytes.Buffer, error) {
	return writeSheet("Зарплата", payrollHeaders, list, func(item payrollapimodels.PayrollView) []interface{} {
		return []interface{}{
			item.EmployeeID,
			item.EmployeeName,
			item.Department,
			item.Period,
			item.ActualDays,
			item.OvertimeHours,
			item.BaseSalary,
			item.Overtime,
			item.GrossPay,
			item.Deductions,
			item.Bonuses,
			item.NetPay,
		}
	})
}

func (i impl) ExportAttendance(list []attendanceapimodels.AttendanceView) (*bytes.Buffer, error) {
	return writeSheet("Посещаемость", attendanceHeaders, list, func(item attendanceapimodels.AttendanceView) []interface{} {
		return []interface{}{
			item.EmployeeID,
			item.EmployeeName,
			item.Date,
			item.TimeIn,
			item.TimeOut,
			item.WorkedHours,
		}
	})
}

func writeSheet[T any](sheetName string, headers []string, list []T, values rowWriter[T]) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	w, err := newSheetWriter(f, sheetName, len(headers))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
	}
	if err = w.header(headers); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	for _, item := range list {
		if err = w.data(values(item)); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = w.filter(); err != nil {
		return nil, errors.Wrap(err, "ошибка установки фильтра в xlsx")
	}
	return f.WriteToBuffer()
}
