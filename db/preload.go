package db

import (
	"hr-payroll-backend/config"
	chathandler "hr-payroll-backend/lib/chat"
	employeehandler "hr-payroll-backend/lib/employee"
	employeestore "hr-payroll-backend/lib/employee/store"
	settingshandler "hr-payroll-backend/lib/settings"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// InitPreload вызывается после инициализации сервисов
func InitPreload() {
	store := employeestore.NewInstance(DB)
	adminID := addAdmin(store)
	migratePlainPasswords(store)
	fillSettings()
	addGeneralRoom(store, adminID)
}

func addAdmin(store employeestore.Provider) string {
	existedRec, err := store.GetByUsername(config.Conf.Admin.Username)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return ""
	}
	if existedRec != nil {
		return existedRec.ID
	}
	cnt, err := store.CountByRole(models.AdminRole)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return ""
	}
	if cnt > 0 {
		return ""
	}
	ids, err := store.ListEmployeeIDs()
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return ""
	}
	password, err := employeehandler.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return ""
	}
	rec := dbmodels.Employee{
		EmployeeID: employeehandler.NextEmployeeID(ids),
		Username:   config.Conf.Admin.Username,
		Password:   password,
		Name:       config.Conf.Admin.Name,
		Department: "Administration",
		Position:   "System Administrator",
		Role:       models.AdminRole,
		Status:     models.EmployeeActive,
	}
	id, err := store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return ""
	}
	log.WithField("employee_id", rec.EmployeeID).Info("добавлен администратор по умолчанию")
	return id
}

// migratePlainPasswords хеширует пароли, сохраненные открытым текстом
func migratePlainPasswords(store employeestore.Provider) {
	list, err := store.ListWithPlainPasswords()
	if err != nil {
		log.WithError(err).Error("ошибка поиска паролей без хеширования")
		return
	}
	for _, rec := range list {
		if rec.Password == "" {
			continue
		}
		hash, err := employeehandler.HashPassword(rec.Password)
		if err != nil {
			log.WithField("employee_id", rec.EmployeeID).WithError(err).Error("ошибка хеширования пароля")
			continue
		}
		if err = store.Update(rec.ID, map[string]interface{}{"password": hash}); err != nil {
			log.WithField("employee_id", rec.EmployeeID).WithError(err).Error("ошибка сохранения хеша пароля")
			continue
		}
		log.WithField("employee_id", rec.EmployeeID).Info("пароль переведен на bcrypt")
	}
}

func fillSettings() {
	if err := settingshandler.Instance.EnsureDefaults(); err != nil {
		log.WithError(err).Error("ошибка заполнения настроек по умолчанию")
	}
}

func addGeneralRoom(store employeestore.Provider, creatorID string) {
	list, err := store.ListActive()
	if err != nil {
		log.WithError(err).Error("ошибка создания общего чата")
		return
	}
	memberIDs := make([]string, 0, len(list))
	for _, rec := range list {
		memberIDs = append(memberIDs, rec.ID)
		if creatorID == "" && rec.Role.IsAdmin() {
			creatorID = rec.ID
		}
	}
	if err = chathandler.Instance.EnsureGeneralRoom(creatorID, memberIDs); err != nil {
		log.WithError(err).Error("ошибка создания общего чата")
	}
}
