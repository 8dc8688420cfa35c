package backupapimodels

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
)

// Metadata содержимое файла-спутника .json
type Metadata struct {
	BackupTime      time.Time `json:"backup_time"`
	BackupType      string    `json:"backup_type"`
	Compressed      bool      `json:"compressed"`
	FileSize        int64     `json:"file_size"`
	DatabaseVersion int       `json:"database_version"`
}

type BackupInfo struct {
	Metadata
	BackupName string `json:"backup_name"`
	BackupPath string `json:"-"`
}

var backupNameRe = regexp.MustCompile(`^payroll_backup_\d{8}_\d{6}(_\d+)?$`)

func ValidateBackupName(name string) error {
	if !backupNameRe.MatchString(name) {
		return errors.New("некорректное имя резервной копии")
	}
	return nil
}

type CreateRequest struct {
	Compress *bool `json:"compress"` // по умолчанию из настроек
}

func (r CreateRequest) Validate() error {
	return nil
}

type RestoreRequest struct {
	BackupName string `json:"backup_name"`
}

func (r RestoreRequest) Validate() error {
	return ValidateBackupName(r.BackupName)
}

type CreateResult struct {
	BackupName string `json:"backup_name"`
	FileSize   int64  `json:"file_size"`
	Offsite    bool   `json:"offsite"` // копия отправлена в S3
}

type VerifyResult struct {
	BackupName string `json:"backup_name"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
}
