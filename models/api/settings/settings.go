package settingsapimodels

import (
	"hr-payroll-backend/models"
	"time"

	"github.com/pkg/errors"
)

type SettingView struct {
	Name        models.SettingCode `json:"name"`
	Value       string             `json:"value"`
	Description string             `json:"description"`
	UpdatedBy   string             `json:"updated_by,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type UpdateRequest struct {
	Values map[models.SettingCode]string `json:"values"`
}

func (r UpdateRequest) Validate() error {
	if len(r.Values) == 0 {
		return errors.New("не переданы значения настроек")
	}
	for code, value := range r.Values {
		if !code.IsKnown() || code == models.SettingSystemLogo {
			return errors.Errorf("неизвестная настройка: %s", code)
		}
		if len(value) > 255 {
			return errors.Errorf("значение настройки %s слишком длинное", code)
		}
	}
	return nil
}
