package backup

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sqliteHeader = []byte("SQLite format 3\x00")

// VerifyBackupIntegrity для .gz проверяется весь поток и заголовок sqlite, для .db - PRAGMA integrity_check
func (m *Manager) VerifyBackupIntegrity(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "файл резервной копии недоступен")
	}
	if strings.HasSuffix(path, extGzip) {
		return verifyGzip(path)
	}
	return verifySqlite(path)
}

// DatabaseVersion значение PRAGMA user_version текущей БД
func (m *Manager) DatabaseVersion() (int, error) {
	if m.dbPath == "" {
		return 0, nil
	}
	var version int
	err := withSqliteFile(m.dbPath, func(db *gorm.DB) error {
		return db.Raw("PRAGMA user_version").Scan(&version).Error
	})
	return version, err
}

func verifyGzip(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "файл не является gzip архивом")
	}
	defer zr.Close()
	header := make([]byte, len(sqliteHeader))
	if _, err = io.ReadFull(zr, header); err != nil {
		return errors.Wrap(err, "ошибка чтения архива")
	}
	if !bytes.Equal(header, sqliteHeader) {
		return errors.New("архив не содержит файл БД sqlite")
	}
	// чтение до конца проверяет контрольную сумму gzip
	if _, err = io.Copy(io.Discard, zr); err != nil {
		return errors.Wrap(err, "архив поврежден")
	}
	return nil
}

func verifySqlite(path string) error {
	var result string
	err := withSqliteFile(path, func(db *gorm.DB) error {
		return db.Raw("PRAGMA integrity_check").Scan(&result).Error
	})
	if err != nil {
		return errors.Wrap(err, "ошибка проверки файла БД")
	}
	if result != "ok" {
		return errors.Errorf("проверка целостности не пройдена: %s", result)
	}
	return nil
}

func withSqliteFile(path string, fn func(db *gorm.DB) error) error {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=ro", path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(db)
}
