package authapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.Struct(r)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return errors.New("не указан текущий пароль")
	}
	if r.CurrentPassword == r.NewPassword {
		return errors.New("новый пароль совпадает с текущим")
	}
	return validation.Password(r.NewPassword, &r.ConfirmPassword)
}

type MeView struct {
	employeeapimodels.EmployeeView
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}
