package pdfexport

import (
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPayslip(t *testing.T) {
	FontDir = t.TempDir()
	data := PayslipData{
		CompanyName: "Federal Agency",
		Position:    "Accountant",
		SalaryRate:  1000,
		Payroll: payrollapimodels.PayrollView{
			EmployeeID:   "EMP001",
			EmployeeName: "John Smith",
			Period:       "2024-05",
			ActualDays:   20,
			BaseSalary:   20000,
			GrossPay:     20000,
			Deductions:   4000,
			Bonuses:      2000,
			NetPay:       18000,
		},
		TaxRate:        0.12,
		InsuranceRate:  0.03,
		RetirementRate: 0.05,
		GeneratedAt:    time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	body, err := Payslip(data)
	require.NoError(t, err)
	require.True(t, len(body) > 100)
	require.Equal(t, "%PDF", string(body[:4]))
}
