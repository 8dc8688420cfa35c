package leavestore

import (
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Leave) (string, error)
	GetByID(id string) (*dbmodels.Leave, error)
	// Decide меняет статус только у заявки на рассмотрении. false - заявка уже рассмотрена
	Decide(id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) (bool, error)
	List(status models.LeaveStatus, employeeRef string) ([]dbmodels.Leave, error)
	CountByStatus(employeeRef string) (map[models.LeaveStatus]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Leave) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Leave, error) {
	rec := dbmodels.Leave{}
	err := i.db.
		Preload("Employee").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Decide(id string, status models.LeaveStatus, decidedBy string, decidedAt time.Time) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Where("id = ? AND status = ?", id, models.LeavePending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) List(status models.LeaveStatus, employeeRef string) (list []dbmodels.Leave, err error) {
	tx := i.db.Preload("Employee")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if employeeRef != "" {
		tx = tx.Where("employee_ref = ?", employeeRef)
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

type statusCount struct {
	Status models.LeaveStatus
	Cnt    int64
}

func (i impl) CountByStatus(employeeRef string) (map[models.LeaveStatus]int64, error) {
	var rows []statusCount
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Select("status, count(*) as cnt")
	if employeeRef != "" {
		tx = tx.Where("employee_ref = ?", employeeRef)
	}
	err := tx.
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.LeaveStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Cnt
	}
	return result, nil
}
