package payrollhandler

import (
	"hr-payroll-backend/lib/utils/helpers"
	dbmodels "hr-payroll-backend/models/db"
)

// Rates параметры расчета зарплаты
type Rates struct {
	OfficeHoursPerDay  float64
	OvertimeMultiplier float64
	TaxRate            float64
	InsuranceRate      float64
	RetirementRate     float64
	BonusDaysThreshold int
	BonusDailyRates    float64
}

func DefaultRates() Rates {
	return Rates{
		OfficeHoursPerDay:  8,
		OvertimeMultiplier: 1.5,
		TaxRate:            0.12,
		InsuranceRate:      0.03,
		RetirementRate:     0.05,
		BonusDaysThreshold: 20,
		BonusDailyRates:    2,
	}
}

// withDefaults нулевые значения заменяются значениями по умолчанию
func (r Rates) withDefaults() Rates {
	def := DefaultRates()
	if r.OfficeHoursPerDay <= 0 {
		r.OfficeHoursPerDay = def.OfficeHoursPerDay
	}
	if r.OvertimeMultiplier <= 0 {
		r.OvertimeMultiplier = def.OvertimeMultiplier
	}
	if r.BonusDaysThreshold <= 0 {
		r.BonusDaysThreshold = def.BonusDaysThreshold
	}
	return r
}

type Breakdown struct {
	ActualDays          int
	OvertimeHours       float64
	BaseSalary          float64
	OvertimePay         float64
	GrossPay            float64
	TaxDeduction        float64
	InsuranceDeduction  float64
	RetirementDeduction float64
	Deductions          float64
	Bonus               float64
	NetPay              float64
}

// Calculate расчет по отметкам за период. Учитываются только дни с приходом и уходом,
// переработка - часы сверх рабочего дня
func Calculate(dailyRate float64, rows []dbmodels.Attendance, rates Rates) Breakdown {
	rates = rates.withDefaults()
	result := Breakdown{}
	for _, row := range rows {
		if !row.IsComplete() {
			continue
		}
		result.ActualDays++
		worked := dbmodels.WorkedHours(row.TimeIn, row.TimeOut)
		if worked > rates.OfficeHoursPerDay {
			result.OvertimeHours += worked - rates.OfficeHoursPerDay
		}
	}
	result.BaseSalary = dailyRate * float64(result.ActualDays)
	result.OvertimePay = result.OvertimeHours * (dailyRate / rates.OfficeHoursPerDay) * rates.OvertimeMultiplier
	result.GrossPay = result.BaseSalary + result.OvertimePay
	result.TaxDeduction = result.GrossPay * rates.TaxRate
	result.InsuranceDeduction = result.GrossPay * rates.InsuranceRate
	result.RetirementDeduction = result.GrossPay * rates.RetirementRate
	result.Deductions = result.TaxDeduction + result.InsuranceDeduction + result.RetirementDeduction
	if result.ActualDays >= rates.BonusDaysThreshold {
		result.Bonus = dailyRate * rates.BonusDailyRates
	}
	result.NetPay = result.GrossPay + result.Bonus - result.Deductions
	return result
}

// ToRecord округляет суммы до копеек для сохранения в ведомости,
// к выплате считается из округленных начислений, премии и удержаний
func (b Breakdown) ToRecord(employeeRef, period, generatedBy string) dbmodels.Payroll {
	gross := helpers.Round2(b.GrossPay)
	deductions := helpers.Round2(b.Deductions)
	bonus := helpers.Round2(b.Bonus)
	return dbmodels.Payroll{
		EmployeeRef:   employeeRef,
		Period:        period,
		ActualDays:    b.ActualDays,
		OvertimeHours: helpers.Round2(b.OvertimeHours),
		BaseSalary:    helpers.Round2(b.BaseSalary),
		Overtime:      helpers.Round2(b.OvertimePay),
		GrossPay:      gross,
		Deductions:    deductions,
		Bonuses:       bonus,
		NetPay:        helpers.Round2(gross + bonus - deductions),
		GeneratedBy:   generatedBy,
	}
}
