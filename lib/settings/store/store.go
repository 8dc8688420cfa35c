package settingsstore

import (
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	List() ([]dbmodels.Setting, error)
	GetValue(code models.SettingCode) (value string, found bool, err error)
	// Upsert создает настройку или обновляет значение существующей
	Upsert(rec dbmodels.Setting) error
	Count() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List() (list []dbmodels.Setting, err error) {
	err = i.db.
		Order("setting_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetValue(code models.SettingCode) (string, bool, error) {
	rec := dbmodels.Setting{}
	err := i.db.
		Where("setting_name = ?", code).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return rec.SettingValue, true, nil
}

func (i impl) Upsert(rec dbmodels.Setting) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_by", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) Count() (cnt int64, err error) {
	err = i.db.
		Model(&dbmodels.Setting{}).
		Count(&cnt).
		Error
	return cnt, err
}
