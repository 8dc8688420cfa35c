package applicationstore

import (
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Application) (string, error)
	GetByID(id string) (*dbmodels.Application, error)
	GetByApplicationID(applicationID string) (*dbmodels.Application, error)
	ListApplicationIDs() ([]string, error)
	List(status models.ApplicationStatus) ([]dbmodels.Application, error)
	Update(id string, updMap map[string]interface{}) error
	CountByStatus(status models.ApplicationStatus) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const statusOrder = "CASE status WHEN 'Pending' THEN 1 WHEN 'In Review' THEN 2 ELSE 3 END"

func (i impl) Create(rec dbmodels.Application) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	return i.first(i.db.Where("id = ?", id))
}

func (i impl) GetByApplicationID(applicationID string) (*dbmodels.Application, error) {
	return i.first(i.db.Where("application_id = ?", applicationID))
}

func (i impl) ListApplicationIDs() (ids []string, err error) {
	err = i.db.
		Model(&dbmodels.Application{}).
		Pluck("application_id", &ids).
		Error
	return ids, err
}

// List новые, затем на рассмотрении, затем остальные; внутри группы - по дате отклика
func (i impl) List(status models.ApplicationStatus) (list []dbmodels.Application, err error) {
	tx := i.db.Model(&dbmodels.Application{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.
		Order(statusOrder).
		Order("applied_date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) CountByStatus(status models.ApplicationStatus) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Application{}).
		Where("status = ?", status).
		Count(&count).
		Error
	return count, err
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
