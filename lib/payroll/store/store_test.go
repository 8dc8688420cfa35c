package payrollstore

import (
	"hr-payroll-backend/lib/utils/testdb"
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestExist(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payrolls" WHERE employee_ref = \$1 AND period = \$2`).
		WithArgs("e1", "2024-05").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	exist, err := NewInstance(db).Exist("e1", "2024-05")
	require.NoError(t, err)
	require.True(t, exist)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock := testdb.New(t)
	mock.ExpectQuery(`SELECT \* FROM "payrolls" WHERE period = \$1 AND employee_ref = \$2 ORDER BY period desc,created_at desc`).
		WithArgs("2024-05", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_ref", "period", "net_pay"}).
			AddRow("p1", "e1", "2024-05", 1000.5))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE "employees"."id" = \$1`).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "name"}).AddRow("e1", "EMP001", "Иванов"))
	list, err := NewInstance(db).List(payrollapimodels.PayrollFilter{Period: "2024-05", EmployeeRef: "e1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Employee)
	require.Equal(t, "EMP001", list[0].Employee.EmployeeID)
	require.Equal(t, 1000.5, list[0].NetPay)
	require.NoError(t, mock.ExpectationsWereMet())
}
