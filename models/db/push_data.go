package dbmodels

import "hr-payroll-backend/models"

// PushData уведомление, ожидающее подключения пользователя к ws
type PushData struct {
	BaseModel
	UserID string          `gorm:"type:varchar(36);index:idx_push_user"`
	Code   models.PushCode `gorm:"type:varchar(64)"`
	Msg    string
	Title  string
}
