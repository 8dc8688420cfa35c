package employeehandler

import (
	"context"
	"fmt"
	employeestore "hr-payroll-backend/lib/employee/store"
	filestorage "hr-payroll-backend/lib/file-storage"
	"hr-payroll-backend/lib/qr"
	"hr-payroll-backend/lib/security/audit"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/lib/utils/helpers"
	"hr-payroll-backend/lib/utils/lock"
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	employeeIDPrefix = "EMP"
	employeeIDWidth  = 3
	createLockWait   = 5 * time.Second
)

var ErrNotFound = apperror.NotFound("сотрудник не найден")

type Provider interface {
	Create(ctx context.Context, req employeeapimodels.CreateEmployee, actor models.Actor) (employeeapimodels.CreateResult, error)
	Update(ctx context.Context, id string, req employeeapimodels.UpdateEmployee, actor models.Actor) error
	Get(id string) (*employeeapimodels.EmployeeView, error)
	List(req employeeapimodels.ListRequest) ([]employeeapimodels.EmployeeView, int64, error)
	Deactivate(ctx context.Context, id string, actor models.Actor) error
	GetQR(ctx context.Context, id string) (png []byte, fileName string, err error)
	UploadPhoto(ctx context.Context, id, fileName, contentType string, body []byte, actor models.Actor) error
	GetPhoto(ctx context.Context, id string) (body []byte, contentType string, err error)
}

// RoomJoiner добавляет нового сотрудника в общий чат
type RoomJoiner interface {
	JoinGeneralRoom(memberID string) error
}

var Instance Provider

func NewHandler(store employeestore.Provider, files filestorage.Provider, auditor audit.Provider, rooms RoomJoiner, uploadMaxMb int) {
	Instance = impl{
		store:       store,
		files:       files,
		auditor:     auditor,
		rooms:       rooms,
		uploadMaxMb: uploadMaxMb,
	}
}

type impl struct {
	store       employeestore.Provider
	files       filestorage.Provider
	auditor     audit.Provider
	rooms       RoomJoiner
	uploadMaxMb int
}

// NextEmployeeID следующий табельный номер: максимальный числовой суффикс + 1, не менее трех цифр
func NextEmployeeID(existing []string) string {
	return helpers.NextSequenceID(employeeIDPrefix, employeeIDWidth, existing)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "ошибка хеширования пароля")
	}
	return string(hash), nil
}

func (i impl) Create(ctx context.Context, req employeeapimodels.CreateEmployee, actor models.Actor) (result employeeapimodels.CreateResult, err error) {
	if actor.Role == models.HRRole && req.Role == models.AdminRole {
		return result, apperror.Forbidden("специалист HR не может создать администратора")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.NfcID = strings.TrimSpace(req.NfcID)
	hash, err := HashPassword(req.Password)
	if err != nil {
		return result, err
	}
	rec := dbmodels.Employee{
		Username:   req.Username,
		Password:   hash,
		Name:       strings.TrimSpace(req.Name),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		SalaryRate: req.SalaryRate,
		Role:       req.Role,
		Status:     models.EmployeeActive,
		NfcID:      req.NfcID,
	}
	// табельный номер и уникальность логина проверяются под одной блокировкой с вставкой
	err = lock.Run(ctx, "employee_id", createLockWait, func() error {
		if err := i.checkUnique(rec.Username, rec.NfcID, ""); err != nil {
			return err
		}
		ids, err := i.store.ListEmployeeIDs()
		if err != nil {
			return errors.Wrap(err, "ошибка получения табельных номеров")
		}
		rec.EmployeeID = NextEmployeeID(ids)
		if err = rec.Validate(); err != nil {
			return apperror.BadRequest(err.Error())
		}
		rec.ID, err = i.store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка добавления сотрудника")
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	logger := log.
		WithField("employee_id", rec.EmployeeID).
		WithField("id", rec.ID)

	// сотрудник уже сохранен, ошибки QR и чата не откатывают создание
	fileID, err := i.storeQR(ctx, rec)
	if err != nil {
		logger.WithError(err).Warn("ошибка формирования QR кода сотрудника")
		result.Warning = "Сотрудник добавлен, но QR код сформировать не удалось"
	} else {
		rec.QrCodePath = fileID
	}
	if i.rooms != nil {
		if err = i.rooms.JoinGeneralRoom(rec.ID); err != nil {
			logger.WithError(err).Warn("ошибка добавления сотрудника в общий чат")
		}
	}
	i.auditor.LogActorEvent(models.EventEmployeeCreated, actor,
		fmt.Sprintf("Добавлен сотрудник %s (%s), роль %s", rec.Name, rec.EmployeeID, rec.Role))
	result.Employee = rec.ToModel()
	return result, nil
}

func (i impl) Update(ctx context.Context, id string, req employeeapimodels.UpdateEmployee, actor models.Actor) error {
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if actor.Role == models.HRRole {
		if rec.Role == models.AdminRole {
			return apperror.Forbidden("специалист HR не может редактировать администратора")
		}
		req.Role = models.EmployeeRole
	}
	req.Username = strings.TrimSpace(req.Username)
	req.NfcID = strings.TrimSpace(req.NfcID)
	if err = i.checkUnique(req.Username, req.NfcID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"username":    req.Username,
		"name":        strings.TrimSpace(req.Name),
		"department":  strings.TrimSpace(req.Department),
		"position":    strings.TrimSpace(req.Position),
		"salary_rate": req.SalaryRate,
		"role":        req.Role,
		"nfc_id":      req.NfcID,
	}
	if req.Status != "" {
		if id == actor.UserID && req.Status != models.EmployeeActive {
			return apperror.BadRequest("нельзя деактивировать собственную учетную запись")
		}
		updMap["status"] = req.Status
	}
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			return err
		}
		updMap["password"] = hash
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	i.auditor.LogActorEvent(models.EventEmployeeUpdated, actor,
		fmt.Sprintf("Изменены данные сотрудника %s (%s)", rec.Name, rec.EmployeeID))
	return nil
}

func (i impl) Get(id string) (*employeeapimodels.EmployeeView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	result := rec.ToModel()
	return &result, nil
}

func (i impl) List(req employeeapimodels.ListRequest) ([]employeeapimodels.EmployeeView, int64, error) {
	page, limit := req.GetPage()
	list, rowCount, err := i.store.List(req.EmployeeFilter, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, rowCount, nil
}

// Deactivate сотрудник не удаляется, чтобы сохранить историю посещаемости и выплат
func (i impl) Deactivate(ctx context.Context, id string, actor models.Actor) error {
	if id == actor.UserID {
		return apperror.BadRequest("нельзя деактивировать собственную учетную запись")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if actor.Role == models.HRRole && rec.Role == models.AdminRole {
		return apperror.Forbidden("специалист HR не может деактивировать администратора")
	}
	if rec.ProfilePicture != "" {
		if err = i.files.Delete(ctx, rec.ProfilePicture); err != nil {
			log.WithField("employee_id", rec.EmployeeID).WithError(err).Warn("ошибка удаления фото сотрудника")
		}
	}
	updMap := map[string]interface{}{
		"status":          models.EmployeeInactive,
		"profile_picture": "",
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка деактивации сотрудника")
	}
	i.auditor.LogActorEvent(models.EventEmployeeDeactivated, actor,
		fmt.Sprintf("Сотрудник %s (%s) деактивирован", rec.Name, rec.EmployeeID))
	return nil
}

// GetQR QR код сотрудника, при отсутствии формируется заново
func (i impl) GetQR(ctx context.Context, id string) (png []byte, fileName string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, "", err
	}
	fileName = fmt.Sprintf("%s_%s_QR.png", rec.EmployeeID, strings.ReplaceAll(rec.Name, " ", "_"))
	if rec.QrCodePath != "" {
		png, _, err = i.files.Get(ctx, rec.QrCodePath)
		if err == nil {
			return png, fileName, nil
		}
		if !apperror.IsNotFound(err) {
			return nil, "", err
		}
	}
	png, err = qr.EmployeeBadge(rec.EmployeeID)
	if err != nil {
		return nil, "", err
	}
	fileID, err := i.files.Upload(ctx, qrFileInfo(*rec), png)
	if err != nil {
		log.WithField("employee_id", rec.EmployeeID).WithError(err).Warn("ошибка сохранения QR кода сотрудника")
		return png, fileName, nil
	}
	if err = i.store.Update(rec.ID, map[string]interface{}{"qr_code_path": fileID}); err != nil {
		log.WithField("employee_id", rec.EmployeeID).WithError(err).Warn("ошибка сохранения ссылки на QR код")
	}
	return png, fileName, nil
}

func (i impl) UploadPhoto(ctx context.Context, id, fileName, contentType string, body []byte, actor models.Actor) error {
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if err = validation.Upload(fileName, body, validation.ImageExtensions, i.uploadMaxMb); err != nil {
		return apperror.BadRequest(err.Error())
	}
	fileID, err := i.files.Upload(ctx, dbmodels.UploadFileInfo{
		OwnerID:     rec.ID,
		FileName:    fileName,
		FileType:    dbmodels.EmployeePhoto,
		ContentType: contentType,
	}, body)
	if err != nil {
		return err
	}
	if err = i.store.Update(rec.ID, map[string]interface{}{"profile_picture": fileID}); err != nil {
		return errors.Wrap(err, "ошибка сохранения фото сотрудника")
	}
	if rec.ProfilePicture != "" {
		if err = i.files.Delete(ctx, rec.ProfilePicture); err != nil {
			log.WithField("employee_id", rec.EmployeeID).WithError(err).Warn("ошибка удаления старого фото сотрудника")
		}
	}
	log.
		WithField("employee_id", rec.EmployeeID).
		WithField("actor_id", actor.UserID).
		Info("фото сотрудника обновлено")
	return nil
}

func (i impl) GetPhoto(ctx context.Context, id string) (body []byte, contentType string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, "", err
	}
	if rec.ProfilePicture == "" {
		return nil, "", filestorage.ErrNotFound
	}
	body, fileRec, err := i.files.Get(ctx, rec.ProfilePicture)
	if err != nil {
		return nil, "", err
	}
	return body, fileRec.ContentType, nil
}

func (i impl) getRec(id string) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) checkUnique(username, nfcID, excludeID string) error {
	exist, err := i.store.ExistByUsername(username, excludeID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки логина")
	}
	if exist {
		return apperror.Conflict("логин уже используется")
	}
	if nfcID == "" {
		return nil
	}
	exist, err = i.store.ExistByNfcID(nfcID, excludeID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки NFC метки")
	}
	if exist {
		return apperror.Conflict("NFC метка уже привязана к другому сотруднику")
	}
	return nil
}

func (i impl) storeQR(ctx context.Context, rec dbmodels.Employee) (string, error) {
	png, err := qr.EmployeeBadge(rec.EmployeeID)
	if err != nil {
		return "", err
	}
	fileID, err := i.files.Upload(ctx, qrFileInfo(rec), png)
	if err != nil {
		return "", err
	}
	if err = i.store.Update(rec.ID, map[string]interface{}{"qr_code_path": fileID}); err != nil {
		return "", errors.Wrap(err, "ошибка сохранения ссылки на QR код")
	}
	return fileID, nil
}

func qrFileInfo(rec dbmodels.Employee) dbmodels.UploadFileInfo {
	return dbmodels.UploadFileInfo{
		OwnerID:     rec.ID,
		FileName:    rec.EmployeeID + "_qr.png",
		FileType:    dbmodels.EmployeeQrCode,
		ContentType: "image/png",
	}
}
