package attendancestore

import (
	attendanceapimodels "hr-payroll-backend/models/api/attendance"
	dbmodels "hr-payroll-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Attendance) (string, error)
	GetByDay(employeeRef, workDate string) (*dbmodels.Attendance, error)
	SetTimeOut(id string, timeOut time.Time) (bool, error)
	List(filter attendanceapimodels.AttendanceFilter) ([]dbmodels.Attendance, error)
	ListForPeriod(employeeRef, from, to string) ([]dbmodels.Attendance, error)
	CountByDay(workDate string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Attendance) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByDay(employeeRef, workDate string) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := i.db.
		Where("employee_ref = ? AND work_date = ?", employeeRef, workDate).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SetTimeOut записывает уход, только если он еще не записан. false - запись уже закрыта
func (i impl) SetTimeOut(id string, timeOut time.Time) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Attendance{}).
		Where("id = ? AND time_out IS NULL", id).
		Update("time_out", timeOut)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) List(filter attendanceapimodels.AttendanceFilter) (list []dbmodels.Attendance, err error) {
	tx := i.db.Preload("Employee")
	if filter.EmployeeRef != "" {
		tx = tx.Where("employee_ref = ?", filter.EmployeeRef)
	}
	if filter.EmployeeID != "" {
		tx = tx.Where("employee_ref IN (?)", i.db.
			Model(&dbmodels.Employee{}).
			Select("id").
			Where("employee_id = ?", filter.EmployeeID))
	}
	if filter.From != "" {
		tx = tx.Where("work_date >= ?", filter.From)
	}
	if filter.To != "" {
		tx = tx.Where("work_date <= ?", filter.To)
	}
	err = tx.
		Order("work_date desc").
		Order("time_in desc").
		Limit(filter.GetLimit()).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForPeriod(employeeRef, from, to string) (list []dbmodels.Attendance, err error) {
	err = i.db.
		Where("employee_ref = ? AND work_date BETWEEN ? AND ?", employeeRef, from, to).
		Order("work_date").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByDay(workDate string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Attendance{}).
		Where("work_date = ? AND time_in IS NOT NULL", workDate).
		Count(&count).
		Error
	return count, err
}
