package securitystore

import (
	"hr-payroll-backend/models"
	securityapimodels "hr-payroll-backend/models/api/security"
	dbmodels "hr-payroll-backend/models/db"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SecurityLog) error
	Recent(limit int) ([]dbmodels.SecurityLog, error)
	CountEventsSince(event models.SecurityEvent, since time.Time) (int64, error)
	CountSince(since time.Time) (int64, error)
	ActiveUsersSince(since time.Time) (int64, error)
	LoginsSince(since time.Time) ([]dbmodels.SecurityLog, error)
	EventCountsSince(since time.Time) ([]securityapimodels.EventCount, error)
	FailedLoginIPs(since time.Time, threshold int) ([]securityapimodels.SuspiciousIP, error)
	DeleteExceptNewest(keep int) (int64, error)
	DatabaseSize() (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SecurityLog) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) Recent(limit int) (list []dbmodels.SecurityLog, err error) {
	err = i.db.
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountEventsSince(event models.SecurityEvent, since time.Time) (count int64, err error) {
	err = i.db.
		Model(dbmodels.SecurityLog{}).
		Where("event_type = ? AND created_at >= ?", event, since).
		Count(&count).
		Error
	return count, err
}

func (i impl) CountSince(since time.Time) (count int64, err error) {
	err = i.db.
		Model(dbmodels.SecurityLog{}).
		Where("created_at >= ?", since).
		Count(&count).
		Error
	return count, err
}

func (i impl) ActiveUsersSince(since time.Time) (count int64, err error) {
	err = i.db.
		Model(dbmodels.SecurityLog{}).
		Where("event_type = ? AND created_at >= ? AND user_id <> ''", models.EventLoginSuccess, since).
		Distinct("user_id").
		Count(&count).
		Error
	return count, err
}

func (i impl) LoginsSince(since time.Time) (list []dbmodels.SecurityLog, err error) {
	err = i.db.
		Select("event_type", "created_at").
		Where("event_type IN ? AND created_at >= ?", []models.SecurityEvent{models.EventLoginSuccess, models.EventLoginFailed}, since).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) EventCountsSince(since time.Time) (list []securityapimodels.EventCount, err error) {
	err = i.db.
		Model(dbmodels.SecurityLog{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Order("count desc").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FailedLoginIPs(since time.Time, threshold int) (list []securityapimodels.SuspiciousIP, err error) {
	err = i.db.
		Model(dbmodels.SecurityLog{}).
		Select("ip_address, COUNT(*) AS attempts").
		Where("event_type = ? AND created_at >= ?", models.EventLoginFailed, since).
		Group("ip_address").
		Having("COUNT(*) >= ?", threshold).
		Order("attempts desc").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteExceptNewest(keep int) (int64, error) {
	newest := i.db.
		Model(dbmodels.SecurityLog{}).
		Select("id").
		Order("created_at desc").
		Limit(keep)
	tx := i.db.
		Where("id NOT IN (?)", newest).
		Delete(&dbmodels.SecurityLog{})
	return tx.RowsAffected, tx.Error
}

func (i impl) DatabaseSize() (size int64, err error) {
	query := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	if i.db.Dialector.Name() == "postgres" {
		query = "SELECT pg_database_size(current_database())"
	}
	err = i.db.Raw(query).Scan(&size).Error
	return size, err
}
