package db

import (
	"fmt"
	dbmodels "hr-payroll-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SchemaVersion записывается в PRAGMA user_version и попадает в метаданные резервных копий
const SchemaVersion = 1

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	tables := []struct {
		name  string
		model any
	}{
		{"Employee", &dbmodels.Employee{}},
		{"Attendance", &dbmodels.Attendance{}},
		{"Leave", &dbmodels.Leave{}},
		{"Payroll", &dbmodels.Payroll{}},
		{"Setting", &dbmodels.Setting{}},
		{"SecurityLog", &dbmodels.SecurityLog{}},
		{"Application", &dbmodels.Application{}},
		{"ChatRoom", &dbmodels.ChatRoom{}},
		{"ChatMessage", &dbmodels.ChatMessage{}},
		{"RoomMembership", &dbmodels.RoomMembership{}},
		{"FileStorage", &dbmodels.FileStorage{}},
		{"PushData", &dbmodels.PushData{}},
	}
	for _, table := range tables {
		if err := DB.AutoMigrate(table.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", table.name)
		}
	}
	if DB.Dialector.Name() == DriverSqlite {
		if err := DB.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)).Error; err != nil {
			return errors.Wrap(err, "ошибка записи версии схемы")
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
