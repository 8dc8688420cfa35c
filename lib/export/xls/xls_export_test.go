package xlsexport

import (
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportEmployees(t *testing.T) {
	buf, err := impl{}.ExportEmployees([]employeeapimodels.EmployeeView{
		{EmployeeID: "EMP001", Name: "Иванов Иван", Username: "ivan", SalaryRate: 1500, Role: models.HRRole, Status: models.EmployeeActive},
		{EmployeeID: "EMP002", Name: "Петров Петр", Username: "petr", Role: models.EmployeeRole, Status: models.EmployeeActive},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Сотрудники")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, employeeHeaders, rows[0])
	require.Equal(t, "EMP001", rows[1][0])
	require.Equal(t, "1500", rows[1][5])
	require.Equal(t, models.HRRole.ToHuman(), rows[1][6])
	require.Equal(t, "Петров Петр", rows[2][1])
}

func TestExportPayrollEmpty(t *testing.T) {
	buf, err := impl{}.ExportPayroll([]payrollapimodels.PayrollView{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Зарплата")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, payrollHeaders, rows[0])
}
