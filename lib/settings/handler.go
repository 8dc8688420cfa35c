package settingshandler

import (
	"context"
	"fmt"
	filestorage "hr-payroll-backend/lib/file-storage"
	"hr-payroll-backend/lib/security/audit"
	settingsstore "hr-payroll-backend/lib/settings/store"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	settingsapimodels "hr-payroll-backend/models/api/settings"
	dbmodels "hr-payroll-backend/models/db"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const logoOwnerID = "system"

type Provider interface {
	List() ([]settingsapimodels.SettingView, error)
	Update(req settingsapimodels.UpdateRequest, actor models.Actor) error
	UploadLogo(ctx context.Context, fileName, contentType string, body []byte, actor models.Actor) error
	GetLogo(ctx context.Context) (body []byte, contentType string, err error)
	CompanyName() string
	// EnsureDefaults заполняет пустую таблицу значениями по умолчанию
	EnsureDefaults() error
}

var Instance Provider

func NewHandler(store settingsstore.Provider, files filestorage.Provider, auditor audit.Provider, uploadMaxMb int) {
	Instance = impl{
		store:       store,
		files:       files,
		auditor:     auditor,
		uploadMaxMb: uploadMaxMb,
	}
}

type impl struct {
	store       settingsstore.Provider
	files       filestorage.Provider
	auditor     audit.Provider
	uploadMaxMb int
}

func (i impl) List() ([]settingsapimodels.SettingView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения настроек")
	}
	result := make([]settingsapimodels.SettingView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Update(req settingsapimodels.UpdateRequest, actor models.Actor) error {
	if err := req.Validate(); err != nil {
		return apperror.BadRequest(err.Error())
	}
	codes := make([]string, 0, len(req.Values))
	for code, value := range req.Values {
		err := i.store.Upsert(dbmodels.Setting{
			SettingName:  code,
			SettingValue: strings.TrimSpace(value),
			Description:  models.DefaultSettings[code].Description,
			UpdatedBy:    actor.UserID,
		})
		if err != nil {
			return errors.Wrapf(err, "ошибка сохранения настройки %s", code)
		}
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	log.
		WithField("actor_id", actor.UserID).
		WithField("settings", codes).
		Info("настройки обновлены")
	if i.auditor != nil {
		i.auditor.LogActorEvent(models.EventSettingsUpdated, actor, fmt.Sprintf("Изменены настройки: %s", strings.Join(codes, ", ")))
	}
	return nil
}

func (i impl) UploadLogo(ctx context.Context, fileName, contentType string, body []byte, actor models.Actor) error {
	if err := validation.Upload(fileName, body, validation.LogoExtensions, i.uploadMaxMb); err != nil {
		return apperror.BadRequest(err.Error())
	}
	oldFileID, _, err := i.store.GetValue(models.SettingSystemLogo)
	if err != nil {
		return errors.Wrap(err, "ошибка получения текущего логотипа")
	}
	fileID, err := i.files.Upload(ctx, dbmodels.UploadFileInfo{
		OwnerID:     logoOwnerID,
		FileName:    fileName,
		FileType:    dbmodels.SystemLogo,
		ContentType: contentType,
	}, body)
	if err != nil {
		return err
	}
	err = i.store.Upsert(dbmodels.Setting{
		SettingName:  models.SettingSystemLogo,
		SettingValue: fileID,
		Description:  "System logo",
		UpdatedBy:    actor.UserID,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения логотипа")
	}
	if oldFileID != "" && oldFileID != fileID {
		if err = i.files.Delete(ctx, oldFileID); err != nil {
			log.WithError(err).Warn("ошибка удаления старого логотипа")
		}
	}
	if i.auditor != nil {
		i.auditor.LogActorEvent(models.EventSettingsUpdated, actor, "Обновлен логотип системы")
	}
	return nil
}

func (i impl) GetLogo(ctx context.Context) ([]byte, string, error) {
	fileID, _, err := i.store.GetValue(models.SettingSystemLogo)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения логотипа")
	}
	if fileID == "" {
		return nil, "", filestorage.ErrNotFound
	}
	body, rec, err := i.files.Get(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	return body, rec.ContentType, nil
}

func (i impl) CompanyName() string {
	value, found, err := i.store.GetValue(models.SettingCompanyName)
	if err != nil {
		log.WithError(err).Warn("ошибка получения названия компании")
	}
	if !found || value == "" {
		return models.DefaultSettings[models.SettingCompanyName].Value
	}
	return value
}

func (i impl) EnsureDefaults() error {
	cnt, err := i.store.Count()
	if err != nil {
		return errors.Wrap(err, "ошибка подсчета настроек")
	}
	if cnt > 0 {
		return nil
	}
	for code, tpl := range models.DefaultSettings {
		err = i.store.Upsert(dbmodels.Setting{
			SettingName:  code,
			SettingValue: tpl.Value,
			Description:  tpl.Description,
		})
		if err != nil {
			return errors.Wrapf(err, "ошибка создания настройки %s", code)
		}
	}
	log.Info("созданы настройки по умолчанию")
	return nil
}
