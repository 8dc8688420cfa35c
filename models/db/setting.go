package dbmodels

import (
	"hr-payroll-backend/models"
	settingsapimodels "hr-payroll-backend/models/api/settings"

	"github.com/pkg/errors"
)

type Setting struct {
	BaseModel
	SettingName  models.SettingCode `gorm:"type:varchar(64);uniqueIndex"`
	SettingValue string             `gorm:"type:varchar(255)"`
	Description  string             `gorm:"type:varchar(255)"`
	UpdatedBy    string             `gorm:"type:varchar(36)"`
}

func (r Setting) Validate() error {
	if r.SettingName == "" {
		return errors.New("не указано название настройки")
	}
	return nil
}

func (r Setting) ToModel() settingsapimodels.SettingView {
	return settingsapimodels.SettingView{
		Name:        r.SettingName,
		Value:       r.SettingValue,
		Description: r.Description,
		UpdatedBy:   r.UpdatedBy,
		UpdatedAt:   r.UpdatedAt,
	}
}
