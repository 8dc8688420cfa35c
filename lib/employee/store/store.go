package employeestore

import (
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Employee) (string, error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Employee, error)
	GetByUsername(username string) (*dbmodels.Employee, error)
	FindActiveByCode(employeeID, nfcID string) (*dbmodels.Employee, error)
	ExistByUsername(username, excludeID string) (bool, error)
	ExistByNfcID(nfcID, excludeID string) (bool, error)
	ListEmployeeIDs() ([]string, error)
	List(filter employeeapimodels.EmployeeFilter, page, limit int) (list []dbmodels.Employee, rowCount int64, err error)
	ListActive() ([]dbmodels.Employee, error)
	ListWithPlainPasswords() ([]dbmodels.Employee, error)
	CountByRole(role models.UserRole) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("id = ?", id))
}

func (i impl) GetByUsername(username string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("username = ?", username))
}

// FindActiveByCode поиск работающего сотрудника по табельному номеру или NFC метке
func (i impl) FindActiveByCode(employeeID, nfcID string) (*dbmodels.Employee, error) {
	tx := i.db.Where("status = ?", models.EmployeeActive)
	switch {
	case employeeID != "" && nfcID != "":
		tx = tx.Where("employee_id = ? OR nfc_id = ?", employeeID, nfcID)
	case employeeID != "":
		tx = tx.Where("employee_id = ?", employeeID)
	case nfcID != "":
		tx = tx.Where("nfc_id = ?", nfcID)
	default:
		return nil, nil
	}
	return i.first(tx.Order("employee_id"))
}

func (i impl) ExistByUsername(username, excludeID string) (bool, error) {
	var count int64
	tx := i.db.
		Model(&dbmodels.Employee{}).
		Where("LOWER(username) = ?", strings.ToLower(username))
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ExistByNfcID(nfcID, excludeID string) (bool, error) {
	var count int64
	tx := i.db.
		Model(&dbmodels.Employee{}).
		Where("nfc_id = ?", nfcID)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListEmployeeIDs() (ids []string, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Pluck("employee_id", &ids).
		Error
	return ids, err
}

func (i impl) List(filter employeeapimodels.EmployeeFilter, page, limit int) (list []dbmodels.Employee, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Employee{})
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(username) LIKE ?", search, search, search)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		tx = tx.Where("role = ?", filter.Role)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("employee_id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListActive() (list []dbmodels.Employee, err error) {
	err = i.db.
		Where("status = ?", models.EmployeeActive).
		Order("employee_id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListWithPlainPasswords() (list []dbmodels.Employee, err error) {
	err = i.db.
		Where("password NOT LIKE ?", "$2%").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByRole(role models.UserRole) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Where("role = ?", role).
		Count(&count).
		Error
	return count, err
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
