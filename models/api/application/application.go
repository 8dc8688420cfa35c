package applicationapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	"time"

	"github.com/pkg/errors"
)

type SubmitRequest struct {
	FullName       string `json:"full_name" form:"full_name" validate:"required,min=2,max=100"`
	Email          string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone          string `json:"phone" form:"phone" validate:"max=30"`
	Address        string `json:"address" form:"address" validate:"max=255"`
	Position       string `json:"position" form:"position" validate:"required,max=100"`
	WorkExperience string `json:"work_experience" form:"work_experience" validate:"max=2000"`
	Education      string `json:"education" form:"education" validate:"max=1000"`
	Skills         string `json:"skills" form:"skills" validate:"max=1000"`
}

func (r SubmitRequest) Validate() error {
	return validation.Struct(r)
}

type Resume struct {
	FileName string
	Body     []byte
}

type SubmitResult struct {
	ApplicationID string `json:"application_id"` // номер для проверки статуса
}

type StatusUpdateRequest struct {
	Status models.ApplicationStatus `json:"status"`
	Notes  string                   `json:"notes" validate:"max=2000"`
}

func (r StatusUpdateRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("указан неизвестный статус")
	}
	return validation.Struct(r)
}

type ApplicationView struct {
	ID             string                   `json:"id"`
	ApplicationID  string                   `json:"application_id"`
	FullName       string                   `json:"full_name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone"`
	Address        string                   `json:"address"`
	Position       string                   `json:"position"`
	HasResume      bool                     `json:"has_resume"`
	WorkExperience string                   `json:"work_experience"`
	Education      string                   `json:"education"`
	Skills         string                   `json:"skills"`
	Status         models.ApplicationStatus `json:"status"`
	StatusName     string                   `json:"status_name"`
	AppliedDate    time.Time                `json:"applied_date"`
	ProcessedBy    string                   `json:"processed_by,omitempty"`
	ProcessedDate  *time.Time               `json:"processed_date,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
}

// StatusView ответ публичной проверки статуса, без контактных данных
type StatusView struct {
	ApplicationID string                   `json:"application_id"`
	FullName      string                   `json:"full_name"`
	Position      string                   `json:"position"`
	Status        models.ApplicationStatus `json:"status"`
	StatusName    string                   `json:"status_name"`
	AppliedDate   time.Time                `json:"applied_date"`
}
