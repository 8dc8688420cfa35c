package filesdbstorage

import (
	dbmodels "hr-payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.FileStorage) (id string, err error)
	GetByID(id string) (*dbmodels.FileStorage, error)
	GetFileIDByType(ownerID string, fileType dbmodels.FileType) (id string, err error)
	Delete(id string) error
}

type impl struct {
	db *gorm.DB
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

func (i impl) SaveFile(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
	err := i.db.
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

func (i impl) GetFileIDByType(ownerID string, fileType dbmodels.FileType) (id string, err error) {
	rec := dbmodels.FileStorage{}
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where("owner_id = ? AND type = ?", ownerID, fileType).
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Delete(id string) error {
	return i.db.Delete(&dbmodels.FileStorage{}, "id = ?", id).Error
}
