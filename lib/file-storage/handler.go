package filestorage

import (
	"bytes"
	"context"
	filesdbstorage "hr-payroll-backend/lib/file-storage/storage"
	"hr-payroll-backend/lib/utils/apperror"
	dbmodels "hr-payroll-backend/models/db"
	s3client "hr-payroll-backend/s3"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	locationS3    = "s3"
	locationLocal = "local"
)

var ErrNotFound = apperror.NotFound("файл не найден")

type Provider interface {
	Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (fileID string, err error)
	Get(ctx context.Context, fileID string) (body []byte, rec *dbmodels.FileStorage, err error)
	GetByOwner(ctx context.Context, ownerID string, fileType dbmodels.FileType) (body []byte, rec *dbmodels.FileStorage, err error)
	Delete(ctx context.Context, fileID string) error
}

var Instance Provider

// NewHandler файлы хранятся в S3, если клиент настроен, иначе в каталоге localDir
func NewHandler(store filesdbstorage.Provider, s3 s3client.Provider, localDir string) {
	Instance = impl{
		store:    store,
		s3:       s3,
		localDir: localDir,
	}
}

type impl struct {
	store    filesdbstorage.Provider
	s3       s3client.Provider
	localDir string
}

func (i impl) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (fileID string, err error) {
	logger := log.
		WithField("owner_id", info.OwnerID).
		WithField("file_type", info.FileType)
	rec := dbmodels.FileStorage{
		Name:        filepath.Base(info.FileName),
		OwnerID:     info.OwnerID,
		Type:        info.FileType,
		ContentType: info.ContentType,
		Size:        int64(len(body)),
	}
	rec.ID = uuid.NewString()
	objectName := i.objectName(rec)
	if i.s3 != nil {
		rec.Location = locationS3
		err = i.s3.PutObject(ctx, objectName, bytes.NewReader(body), rec.Size, info.ContentType)
	} else {
		rec.Location = locationLocal
		err = i.writeLocal(objectName, body)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения файла")
		return "", errors.Wrap(err, "ошибка сохранения файла")
	}
	fileID, err = i.store.SaveFile(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения информации о файле")
		return "", errors.Wrap(err, "ошибка сохранения информации о файле")
	}
	return fileID, nil
}

func (i impl) Get(ctx context.Context, fileID string) (body []byte, rec *dbmodels.FileStorage, err error) {
	rec, err = i.store.GetByID(fileID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения информации о файле")
	}
	if rec == nil {
		return nil, nil, ErrNotFound
	}
	objectName := i.objectName(*rec)
	if rec.Location == locationS3 {
		if i.s3 == nil {
			return nil, nil, errors.New("файл хранится в S3, но S3 не настроен")
		}
		body, err = i.s3.GetObject(ctx, objectName)
	} else {
		body, err = os.ReadFile(filepath.Join(i.localDir, objectName))
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return body, rec, nil
}

func (i impl) GetByOwner(ctx context.Context, ownerID string, fileType dbmodels.FileType) (body []byte, rec *dbmodels.FileStorage, err error) {
	fileID, err := i.store.GetFileIDByType(ownerID, fileType)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка поиска файла")
	}
	if fileID == "" {
		return nil, nil, ErrNotFound
	}
	return i.Get(ctx, fileID)
}

func (i impl) Delete(ctx context.Context, fileID string) error {
	rec, err := i.store.GetByID(fileID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения информации о файле")
	}
	if rec == nil {
		return nil
	}
	objectName := i.objectName(*rec)
	if rec.Location == locationS3 && i.s3 != nil {
		err = i.s3.RemoveObject(ctx, objectName)
	} else if rec.Location == locationLocal {
		err = os.Remove(filepath.Join(i.localDir, objectName))
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
	}
	if err != nil {
		log.WithField("file_id", fileID).WithError(err).Warn("ошибка удаления файла из хранилища")
	}
	return i.store.Delete(fileID)
}

func (i impl) objectName(rec dbmodels.FileStorage) string {
	return string(rec.Type) + "/" + rec.ID + strings.ToLower(filepath.Ext(rec.Name))
}

func (i impl) writeLocal(objectName string, body []byte) error {
	path := filepath.Join(i.localDir, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
