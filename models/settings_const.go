package models

type SettingCode string

const (
	SettingOfficeHoursPerDay  SettingCode = "office_hours_per_day"
	SettingOvertimeMultiplier SettingCode = "overtime_multiplier"
	SettingTaxRate            SettingCode = "tax_rate"
	SettingInsuranceDeduction SettingCode = "insurance_deduction"
	SettingCompanyName        SettingCode = "company_name"
	SettingPayrollPeriod      SettingCode = "payroll_period"
	SettingSystemLogo         SettingCode = "system_logo"
)

type SettingTpl struct {
	Value       string
	Description string
}

// DefaultSettings значения, которыми заполняется пустая таблица настроек
var DefaultSettings = map[SettingCode]SettingTpl{
	SettingOfficeHoursPerDay:  {Value: "8", Description: "Standard office hours per day"},
	SettingOvertimeMultiplier: {Value: "1.5", Description: "Overtime pay multiplier"},
	SettingTaxRate:            {Value: "0.12", Description: "Tax deduction rate"},
	SettingInsuranceDeduction: {Value: "500", Description: "Fixed insurance deduction"},
	SettingCompanyName:        {Value: "Federal Agency", Description: "Company name"},
	SettingPayrollPeriod:      {Value: "monthly", Description: "Payroll period (weekly/monthly)"},
}

func (c SettingCode) IsKnown() bool {
	if c == SettingSystemLogo {
		return true
	}
	_, ok := DefaultSettings[c]
	return ok
}
