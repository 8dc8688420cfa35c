package applicationhandler

import (
	"context"
	"fmt"
	applicationstore "hr-payroll-backend/lib/application/store"
	employeestore "hr-payroll-backend/lib/employee/store"
	filestorage "hr-payroll-backend/lib/file-storage"
	pushhandler "hr-payroll-backend/lib/push"
	"hr-payroll-backend/lib/smtp"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/lib/utils/helpers"
	"hr-payroll-backend/lib/utils/lock"
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	applicationapimodels "hr-payroll-backend/models/api/application"
	dbmodels "hr-payroll-backend/models/db"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	applicationIDPrefix = "APP"
	applicationIDWidth  = 4
	submitLockWait      = 5 * time.Second
)

var ErrNotFound = apperror.NotFound("отклик не найден")

type Provider interface {
	Submit(ctx context.Context, req applicationapimodels.SubmitRequest, resume *applicationapimodels.Resume) (applicationapimodels.SubmitResult, error)
	Status(applicationID string) (*applicationapimodels.StatusView, error)
	List(status models.ApplicationStatus) ([]applicationapimodels.ApplicationView, error)
	Get(id string) (*applicationapimodels.ApplicationView, error)
	UpdateStatus(id string, req applicationapimodels.StatusUpdateRequest, actor models.Actor) error
	GetResume(ctx context.Context, id string) (body []byte, fileName, contentType string, err error)
	PendingCount() (int64, error)
}

var Instance Provider

func NewHandler(store applicationstore.Provider, employees employeestore.Provider, files filestorage.Provider,
	push pushhandler.Provider, mail smtp.Provider, uploadMaxMb int) {
	Instance = impl{
		store:       store,
		employees:   employees,
		files:       files,
		push:        push,
		mail:        mail,
		uploadMaxMb: uploadMaxMb,
		now:         time.Now,
	}
}

type impl struct {
	store       applicationstore.Provider
	employees   employeestore.Provider
	files       filestorage.Provider
	push        pushhandler.Provider
	mail        smtp.Provider
	uploadMaxMb int
	now         func() time.Time
}

// NextApplicationID номер отклика вида APP0001
func NextApplicationID(existing []string) string {
	return helpers.NextSequenceID(applicationIDPrefix, applicationIDWidth, existing)
}

func (i impl) Submit(ctx context.Context, req applicationapimodels.SubmitRequest, resume *applicationapimodels.Resume) (result applicationapimodels.SubmitResult, err error) {
	if resume != nil {
		if err = validation.Upload(resume.FileName, resume.Body, validation.ResumeExtensions, i.uploadMaxMb); err != nil {
			return result, apperror.BadRequest(err.Error())
		}
	}
	rec := dbmodels.Application{
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		Position:       strings.TrimSpace(req.Position),
		WorkExperience: strings.TrimSpace(req.WorkExperience),
		Education:      strings.TrimSpace(req.Education),
		Skills:         strings.TrimSpace(req.Skills),
		Status:         models.ApplicationPending,
		AppliedDate:    i.now(),
	}
	err = lock.Run(ctx, "application_id", submitLockWait, func() error {
		ids, err := i.store.ListApplicationIDs()
		if err != nil {
			return errors.Wrap(err, "ошибка получения номеров откликов")
		}
		rec.ApplicationID = NextApplicationID(ids)
		if err = rec.Validate(); err != nil {
			return apperror.BadRequest(err.Error())
		}
		rec.ID, err = i.store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения отклика")
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	logger := log.WithField("application_id", rec.ApplicationID)
	if resume != nil {
		fileID, err := i.files.Upload(ctx, dbmodels.UploadFileInfo{
			OwnerID:     rec.ID,
			FileName:    rec.ApplicationID + "_" + filepath.Base(resume.FileName),
			FileType:    dbmodels.ApplicationResume,
			ContentType: resumeContentType(resume.FileName),
		}, resume.Body)
		if err != nil {
			logger.WithError(err).Error("ошибка сохранения резюме")
		} else if err = i.store.Update(rec.ID, map[string]interface{}{"resume_file_id": fileID}); err != nil {
			logger.WithError(err).Error("ошибка сохранения ссылки на резюме")
		}
	}
	logger.Info("получен отклик кандидата")
	i.notifyStaff(rec)
	result.ApplicationID = rec.ApplicationID
	return result, nil
}

func (i impl) Status(applicationID string) (*applicationapimodels.StatusView, error) {
	applicationID = strings.ToUpper(strings.TrimSpace(applicationID))
	if applicationID == "" {
		return nil, apperror.BadRequest("не указан номер отклика")
	}
	rec, err := i.store.GetByApplicationID(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска отклика")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	result := rec.ToStatusModel()
	return &result, nil
}

func (i impl) List(status models.ApplicationStatus) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.store.List(status)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения откликов")
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Get(id string) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	result := rec.ToModel()
	return &result, nil
}

func (i impl) UpdateStatus(id string, req applicationapimodels.StatusUpdateRequest, actor models.Actor) error {
	if !req.Status.IsValid() {
		return apperror.BadRequest("указан неизвестный статус")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"status":         req.Status,
		"notes":          strings.TrimSpace(req.Notes),
		"processed_by":   actor.UserID,
		"processed_date": i.now(),
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления статуса отклика")
	}
	logger := log.
		WithField("application_id", rec.ApplicationID).
		WithField("status", req.Status)
	logger.Info("статус отклика изменен")
	if rec.Status != req.Status && i.mail != nil && i.mail.IsConfigured() {
		subject, body := statusMail(*rec, req.Status)
		if err = i.mail.SendEMail(rec.Email, subject, body); err != nil {
			logger.WithError(err).Warn("ошибка отправки письма кандидату")
		}
	}
	return nil
}

func (i impl) GetResume(ctx context.Context, id string) (body []byte, fileName, contentType string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, "", "", err
	}
	if rec.ResumeFileID == "" {
		return nil, "", "", filestorage.ErrNotFound
	}
	body, fileRec, err := i.files.Get(ctx, rec.ResumeFileID)
	if err != nil {
		return nil, "", "", err
	}
	return body, fileRec.Name, fileRec.ContentType, nil
}

func (i impl) PendingCount() (int64, error) {
	count, err := i.store.CountByStatus(models.ApplicationPending)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета новых откликов")
	}
	return count, nil
}

func (i impl) getRec(id string) (*dbmodels.Application, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отклика")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) notifyStaff(rec dbmodels.Application) {
	if i.push == nil {
		return
	}
	employees, err := i.employees.ListActive()
	if err != nil {
		log.WithError(err).Warn("ошибка получения списка сотрудников для уведомления")
		return
	}
	for _, employee := range employees {
		if employee.Role.IsStaff() {
			i.push.SendNotification(employee.ID, models.PushApplicationNew, rec.ApplicationID, rec.FullName, rec.Position)
		}
	}
}

func statusMail(rec dbmodels.Application, status models.ApplicationStatus) (subject, body string) {
	subject = fmt.Sprintf("Отклик %s: %s", rec.ApplicationID, status.ToHuman())
	body = fmt.Sprintf("Здравствуйте, %s!\r\n\r\nСтатус вашего отклика %s на позицию «%s» изменен: %s.\r\n",
		rec.FullName, rec.ApplicationID, rec.Position, status.ToHuman())
	return subject, body
}

func resumeContentType(fileName string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
