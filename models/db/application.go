package dbmodels

import (
	"hr-payroll-backend/models"
	applicationapimodels "hr-payroll-backend/models/api/application"
	"time"

	"github.com/pkg/errors"
)

type Application struct {
	BaseModel
	ApplicationID  string                   `gorm:"type:varchar(20);uniqueIndex"`
	FullName       string                   `gorm:"type:varchar(100)"`
	Email          string                   `gorm:"type:varchar(254)"`
	Phone          string                   `gorm:"type:varchar(30)"`
	Address        string                   `gorm:"type:varchar(255)"`
	Position       string                   `gorm:"type:varchar(100)"`
	ResumeFileID   string                   `gorm:"type:varchar(36)"`
	WorkExperience string
	Education      string
	Skills         string
	Status         models.ApplicationStatus `gorm:"type:varchar(20);index"`
	AppliedDate    time.Time                `gorm:"index"`
	ProcessedBy    string                   `gorm:"type:varchar(36)"`
	ProcessedDate  *time.Time
	Notes          string
}

func (r Application) Validate() error {
	if r.ApplicationID == "" {
		return errors.New("отсутствует номер отклика")
	}
	if r.FullName == "" {
		return errors.New("не указано имя кандидата")
	}
	if !r.Status.IsValid() {
		return errors.New("указан неизвестный статус")
	}
	return nil
}

func (r Application) ToModel() applicationapimodels.ApplicationView {
	return applicationapimodels.ApplicationView{
		ID:             r.ID,
		ApplicationID:  r.ApplicationID,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		Position:       r.Position,
		HasResume:      r.ResumeFileID != "",
		WorkExperience: r.WorkExperience,
		Education:      r.Education,
		Skills:         r.Skills,
		Status:         r.Status,
		StatusName:     r.Status.ToHuman(),
		AppliedDate:    r.AppliedDate,
		ProcessedBy:    r.ProcessedBy,
		ProcessedDate:  r.ProcessedDate,
		Notes:          r.Notes,
	}
}

func (r Application) ToStatusModel() applicationapimodels.StatusView {
	return applicationapimodels.StatusView{
		ApplicationID: r.ApplicationID,
		FullName:      r.FullName,
		Position:      r.Position,
		Status:        r.Status,
		StatusName:    r.Status.ToHuman(),
		AppliedDate:   r.AppliedDate,
	}
}
