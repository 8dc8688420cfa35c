package payrollhandler

import (
	"context"
	"fmt"
	attendancestore "hr-payroll-backend/lib/attendance/store"
	employeestore "hr-payroll-backend/lib/employee/store"
	pdfexport "hr-payroll-backend/lib/export/pdf"
	payrollstore "hr-payroll-backend/lib/payroll/store"
	pushhandler "hr-payroll-backend/lib/push"
	"hr-payroll-backend/lib/security/audit"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/lib/utils/helpers"
	"hr-payroll-backend/lib/utils/lock"
	"hr-payroll-backend/models"
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const generateLockWait = 10 * time.Second

var ErrNotFound = apperror.NotFound("запись ведомости не найдена")

type Provider interface {
	Generate(ctx context.Context, period string, actor models.Actor) (payrollapimodels.GenerateResult, error)
	List(filter payrollapimodels.PayrollFilter) ([]payrollapimodels.PayrollView, error)
	My(employeeRef string) ([]payrollapimodels.PayrollView, error)
	Payslip(id string, viewer models.Actor) (pdf []byte, fileName string, err error)
	Rates() Rates
}

// CompanyInfo название организации для расчетного листка
type CompanyInfo interface {
	CompanyName() string
}

var Instance Provider

func NewHandler(store payrollstore.Provider, employees employeestore.Provider, attendance attendancestore.Provider,
	push pushhandler.Provider, auditor audit.Provider, company CompanyInfo, rates Rates) {
	Instance = impl{
		store:      store,
		employees:  employees,
		attendance: attendance,
		push:       push,
		auditor:    auditor,
		company:    company,
		rates:      rates.withDefaults(),
		now:        time.Now,
	}
}

type impl struct {
	store      payrollstore.Provider
	employees  employeestore.Provider
	attendance attendancestore.Provider
	push       pushhandler.Provider
	auditor    audit.Provider
	company    CompanyInfo
	rates      Rates
	now        func() time.Time
}

func (i impl) Rates() Rates {
	return i.rates
}

// Generate формирует ведомость за период для всех работающих сотрудников.
// Существующие записи не пересчитываются
func (i impl) Generate(ctx context.Context, period string, actor models.Actor) (result payrollapimodels.GenerateResult, err error) {
	if period == "" {
		period = i.now().Format(payrollapimodels.PeriodLayout)
	}
	if err = payrollapimodels.ValidatePeriod(period); err != nil {
		return result, apperror.BadRequest(err.Error())
	}
	from, to, err := helpers.MonthBounds(period)
	if err != nil {
		return result, apperror.BadRequest(err.Error())
	}
	result.Period = period
	logger := log.WithField("period", period)

	var notify []string
	err = lock.Run(ctx, "payroll_generate", generateLockWait, func() error {
		employees, err := i.employees.ListActive()
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка сотрудников")
		}
		for _, employee := range employees {
			if helpers.IsContextDone(ctx) {
				return ctx.Err()
			}
			exist, err := i.store.Exist(employee.ID, period)
			if err != nil {
				return errors.Wrapf(err, "ошибка проверки ведомости сотрудника %s", employee.EmployeeID)
			}
			if exist {
				result.Skipped++
				continue
			}
			rows, err := i.attendance.ListForPeriod(employee.ID, from, to)
			if err != nil {
				return errors.Wrapf(err, "ошибка получения посещаемости сотрудника %s", employee.EmployeeID)
			}
			rec := Calculate(employee.SalaryRate, rows, i.rates).ToRecord(employee.ID, period, actor.UserID)
			if _, err = i.store.Create(rec); err != nil {
				return errors.Wrapf(err, "ошибка сохранения ведомости сотрудника %s", employee.EmployeeID)
			}
			result.Created++
			notify = append(notify, employee.ID)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка формирования ведомости")
		return result, err
	}
	i.auditor.LogActorEvent(models.EventPayrollGenerated, actor,
		fmt.Sprintf("Сформирована ведомость за %s: создано %d, пропущено %d", period, result.Created, result.Skipped))
	if i.push != nil {
		for _, userID := range notify {
			i.push.SendNotification(userID, models.PushPayrollGenerated, period)
		}
	}
	return result, nil
}

func (i impl) List(filter payrollapimodels.PayrollFilter) ([]payrollapimodels.PayrollView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения ведомости")
	}
	result := make([]payrollapimodels.PayrollView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) My(employeeRef string) ([]payrollapimodels.PayrollView, error) {
	return i.List(payrollapimodels.PayrollFilter{EmployeeRef: employeeRef})
}

// Payslip расчетный листок, сотрудник может получить только свой
func (i impl) Payslip(id string, viewer models.Actor) (pdf []byte, fileName string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения записи ведомости")
	}
	if rec == nil {
		return nil, "", ErrNotFound
	}
	if !viewer.Role.IsStaff() && rec.EmployeeRef != viewer.UserID {
		return nil, "", ErrNotFound
	}
	data := pdfexport.PayslipData{
		Payroll:        rec.ToModel(),
		TaxRate:        i.rates.TaxRate,
		InsuranceRate:  i.rates.InsuranceRate,
		RetirementRate: i.rates.RetirementRate,
		GeneratedAt:    i.now(),
	}
	if i.company != nil {
		data.CompanyName = i.company.CompanyName()
	}
	if rec.Employee != nil {
		data.Position = rec.Employee.Position
		data.SalaryRate = rec.Employee.SalaryRate
	}
	pdf, err = pdfexport.Payslip(data)
	if err != nil {
		log.WithField("payroll_id", id).WithError(err).Error("ошибка формирования расчетного листка")
		return nil, "", errors.Wrap(err, "ошибка формирования расчетного листка")
	}
	fileName = fmt.Sprintf("Payslip_%s_%s.pdf", data.Payroll.EmployeeID, rec.Period)
	return pdf, fileName, nil
}
