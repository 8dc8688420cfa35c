package attendancehandler

import (
	"context"
	"fmt"
	attendancestore "hr-payroll-backend/lib/attendance/store"
	employeestore "hr-payroll-backend/lib/employee/store"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/lib/utils/lock"
	attendanceapimodels "hr-payroll-backend/models/api/attendance"
	dbmodels "hr-payroll-backend/models/db"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const punchLockWait = 5 * time.Second

var (
	employeeIDRe = regexp.MustCompile(`^EMP\d{3,}$`)
	digitsRe     = regexp.MustCompile(`^\d+$`)
)

var (
	ErrInvalidScan      = apperror.BadRequest("неверный формат данных сканирования")
	ErrEmployeeNotFound = apperror.NotFound("сотрудник не найден или деактивирован")
)

type Provider interface {
	Punch(ctx context.Context, req attendanceapimodels.PunchRequest) (attendanceapimodels.PunchResult, error)
	List(filter attendanceapimodels.AttendanceFilter) ([]attendanceapimodels.AttendanceView, error)
	TodayCount() (int64, error)
	My(employeeRef string, filter attendanceapimodels.AttendanceFilter) ([]attendanceapimodels.AttendanceView, error)
}

var Instance Provider

func NewHandler(store attendancestore.Provider, employees employeestore.Provider) {
	Instance = impl{
		store:     store,
		employees: employees,
		now:       time.Now,
	}
}

type impl struct {
	store     attendancestore.Provider
	employees employeestore.Provider
	now       func() time.Time
}

// NormalizeScan приводит данные сканера к табельному номеру: EMP001 как есть, 15 -> EMP015
func NormalizeScan(raw string) (employeeID string, ok bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", false
	}
	if employeeIDRe.MatchString(cleaned) {
		return cleaned, true
	}
	if digitsRe.MatchString(cleaned) {
		if len(cleaned) < 3 {
			cleaned = strings.Repeat("0", 3-len(cleaned)) + cleaned
		}
		return "EMP" + cleaned, true
	}
	return "", false
}

// NextPunchAction действие отметки для дневной записи: нет записи - приход, нет ухода - уход
func NextPunchAction(rec *dbmodels.Attendance) attendanceapimodels.PunchAction {
	switch {
	case rec == nil || rec.TimeIn == nil:
		return attendanceapimodels.PunchTimeIn
	case rec.TimeOut == nil:
		return attendanceapimodels.PunchTimeOut
	default:
		return attendanceapimodels.PunchNone
	}
}

func (i impl) Punch(ctx context.Context, req attendanceapimodels.PunchRequest) (result attendanceapimodels.PunchResult, err error) {
	employee, err := i.resolveEmployee(req)
	if err != nil {
		return result, err
	}
	now := i.now()
	workDate := now.Format(attendanceapimodels.DateLayout)
	logger := log.
		WithField("employee_id", employee.EmployeeID).
		WithField("work_date", workDate)

	err = lock.Run(ctx, "attendance_"+employee.ID, punchLockWait, func() error {
		rec, err := i.store.GetByDay(employee.ID, workDate)
		if err != nil {
			return errors.Wrap(err, "ошибка получения отметки за день")
		}
		result.Action = NextPunchAction(rec)
		switch result.Action {
		case attendanceapimodels.PunchTimeIn:
			if rec != nil {
				return errors.New("запись посещаемости без времени прихода")
			}
			_, err = i.store.Create(dbmodels.Attendance{
				EmployeeRef: employee.ID,
				WorkDate:    workDate,
				TimeIn:      &now,
			})
			if err != nil {
				return errors.Wrap(err, "ошибка записи прихода")
			}
			result.TimeIn = now.Format(attendanceapimodels.TimeLayout)
		case attendanceapimodels.PunchTimeOut:
			updated, err := i.store.SetTimeOut(rec.ID, now)
			if err != nil {
				return errors.Wrap(err, "ошибка записи ухода")
			}
			if !updated {
				result.Action = attendanceapimodels.PunchNone
			}
			result.TimeIn = rec.TimeIn.Format(attendanceapimodels.TimeLayout)
			result.TimeOut = now.Format(attendanceapimodels.TimeLayout)
		default:
			result.TimeIn = rec.TimeIn.Format(attendanceapimodels.TimeLayout)
			result.TimeOut = rec.TimeOut.Format(attendanceapimodels.TimeLayout)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отметки посещаемости")
		return result, err
	}

	result.Date = workDate
	result.Time = now.Format(attendanceapimodels.TimeLayout)
	result.Employee = employee.ToBrief()
	switch result.Action {
	case attendanceapimodels.PunchTimeIn:
		result.Message = fmt.Sprintf("Приход отмечен в %s", result.Time)
	case attendanceapimodels.PunchTimeOut:
		result.Message = fmt.Sprintf("Уход отмечен в %s", result.Time)
	default:
		result.Message = "Приход и уход за сегодня уже отмечены"
	}
	logger.WithField("action", result.Action).Info("отметка посещаемости")
	return result, nil
}

func (i impl) List(filter attendanceapimodels.AttendanceFilter) ([]attendanceapimodels.AttendanceView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения посещаемости")
	}
	result := make([]attendanceapimodels.AttendanceView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) TodayCount() (int64, error) {
	count, err := i.store.CountByDay(i.now().Format(attendanceapimodels.DateLayout))
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета отметок за день")
	}
	return count, nil
}

func (i impl) My(employeeRef string, filter attendanceapimodels.AttendanceFilter) ([]attendanceapimodels.AttendanceView, error) {
	filter.EmployeeRef = employeeRef
	filter.EmployeeID = ""
	return i.List(filter)
}

// resolveEmployee ручной ввод ищется по табельному номеру и NFC,
// данные сканера - по нормализованному номеру и по исходному значению NFC метки
func (i impl) resolveEmployee(req attendanceapimodels.PunchRequest) (*dbmodels.Employee, error) {
	var employeeID, nfcID string
	scan := strings.TrimSpace(req.ScanData)
	if scan != "" {
		normalized, ok := NormalizeScan(scan)
		if ok {
			employeeID = normalized
		}
		nfcID = scan
	} else {
		employeeID = strings.ToUpper(strings.TrimSpace(req.EmployeeID))
		nfcID = employeeID
	}
	if employeeID == "" && nfcID == "" {
		return nil, apperror.BadRequest("не указан табельный номер")
	}
	employee, err := i.employees.FindActiveByCode(employeeID, nfcID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска сотрудника")
	}
	if employee == nil {
		if scan != "" && employeeID == "" {
			return nil, ErrInvalidScan
		}
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}
