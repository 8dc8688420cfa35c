package authapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
)

const TokenTypeBearer = "Bearer"

// JWTResponse пара токенов и краткие данные пользователя для интерфейса
type JWTResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // сек
	EmployeeID   string          `json:"employee_id"`
	Name         string          `json:"name"`
	Role         models.UserRole `json:"role"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (r JWTRefreshRequest) Validate() error {
	return validation.Struct(r)
}
