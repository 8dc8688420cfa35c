package payrollstore

import (
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	dbmodels "hr-payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Payroll) (string, error)
	Exist(employeeRef, period string) (bool, error)
	GetByID(id string) (*dbmodels.Payroll, error)
	List(filter payrollapimodels.PayrollFilter) ([]dbmodels.Payroll, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Payroll) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Exist(employeeRef, period string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Payroll{}).
		Where("employee_ref = ? AND period = ?", employeeRef, period).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) GetByID(id string) (*dbmodels.Payroll, error) {
	rec := dbmodels.Payroll{}
	err := i.db.
		Preload("Employee").
		Where("id = ?", id).
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

func (i impl) List(filter payrollapimodels.PayrollFilter) (list []dbmodels.Payroll, err error) {
	tx := i.db.Preload("Employee")
	if filter.Period != "" {
		tx = tx.Where("period = ?", filter.Period)
	}
	if filter.EmployeeRef != "" {
		tx = tx.Where("employee_ref = ?", filter.EmployeeRef)
	}
	if filter.EmployeeID != "" {
		tx = tx.Where("employee_ref IN (?)", i.db.
			Model(&dbmodels.Employee{}).
			Select("id").
			Where("employee_id = ?", filter.EmployeeID))
	}
	err = tx.
		Order("period desc").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
