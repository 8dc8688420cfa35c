package dbmodels

import (
	"hr-payroll-backend/models"
	securityapimodels "hr-payroll-backend/models/api/security"
)

// SecurityLog запись журнала аудита, время события - CreatedAt
type SecurityLog struct {
	BaseModel
	EventType        models.SecurityEvent `gorm:"type:varchar(50);index"`
	UserID           string               `gorm:"type:varchar(36);index"`
	User             *Employee            `gorm:"foreignKey:UserID"`
	IPAddress        string               `gorm:"type:varchar(64);index"`
	UserAgent        string               `gorm:"type:varchar(255)"`
	EventDescription string
}

func (r SecurityLog) ToModel() securityapimodels.LogView {
	result := securityapimodels.LogView{
		ID:          r.ID,
		EventType:   r.EventType,
		UserID:      r.UserID,
		IPAddress:   r.IPAddress,
		UserAgent:   r.UserAgent,
		Description: r.EventDescription,
		Timestamp:   r.CreatedAt,
	}
	if r.User != nil {
		result.UserName = r.User.Name
	}
	return result
}
