package leaveapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

type LeaveRequest struct {
	Type      string               `json:"type" validate:"required,max=50"` // Sick/Vacation/Unpaid/...
	Duration  models.LeaveDuration `json:"duration"`                        // Full/Half, по умолчанию Full
	StartDate string               `json:"start_date" validate:"required"`  // YYYY-MM-DD
	EndDate   string               `json:"end_date" validate:"required"`    // YYYY-MM-DD
	Reason    string               `json:"reason" validate:"max=500"`
}

func (r LeaveRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Duration != "" && !r.Duration.IsValid() {
		return errors.New("продолжительность должна быть Full или Half")
	}
	return ValidateDateRange(r.StartDate, r.EndDate, time.Now())
}

// ValidateDateRange начало не позже окончания и не более чем на год вперед
func ValidateDateRange(startDate, endDate string, now time.Time) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return errors.New("неверный формат даты начала")
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return errors.New("неверный формат даты окончания")
	}
	if start.After(end) {
		return errors.New("дата начала не может быть позже даты окончания")
	}
	if start.After(now.AddDate(1, 0, 0)) {
		return errors.New("дата начала не может быть больше чем на год вперед")
	}
	return nil
}

type DecisionRequest struct {
	Status models.LeaveStatus `json:"status"` // Approved/Rejected
}

func (r DecisionRequest) Validate() error {
	if !r.Status.IsDecision() {
		return errors.New("допустимые решения: Approved или Rejected")
	}
	return nil
}

type LeaveView struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Type         string               `json:"type"`
	Duration     models.LeaveDuration `json:"duration"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Reason       string               `json:"reason"`
	Status       models.LeaveStatus   `json:"status"`
	StatusName   string               `json:"status_name"`
}

type LeaveStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}
