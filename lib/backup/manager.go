package backup

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"hr-payroll-backend/lib/utils/lock"
	"hr-payroll-backend/models"
	backupapimodels "hr-payroll-backend/models/api/backup"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	namePrefix     = "payroll_backup_"
	nameTimeLayout = "20060102_150405"
	backupTypeFull = "full"

	extGzip     = ".gz"
	extDB       = ".db"
	extMetadata = ".json"

	lockKey  = "backup_manager"
	lockWait = 30 * time.Second

	DefaultMaxBackups = 30
)

// Auditor запись событий резервного копирования в журнал безопасности
type Auditor interface {
	LogActorEvent(event models.SecurityEvent, actor models.Actor, description string)
	LogSystemEvent(event models.SecurityEvent, description string)
}

// Offsite внешнее хранилище копий
type Offsite interface {
	Upload(ctx context.Context, name string, path string) error
}

type Config struct {
	Dir        string
	MaxBackups int
	Offsite    Offsite
	// AfterRestore вызывается после замены файла БД, например для сброса пула соединений
	AfterRestore func() error
}

type Manager struct {
	cfg    Config
	dbPath string
	audit  Auditor
	now    func() time.Time
	// replaceDB записывает содержимое копии в файл БД
	replaceDB func(src, dst string, compressed bool) error
}

func New(cfg Config, dbPath string, audit Auditor) *Manager {
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}
	return &Manager{
		cfg:       cfg,
		dbPath:    dbPath,
		audit:     audit,
		now:       time.Now,
		replaceDB: writeDBFile,
	}
}

func (m *Manager) getLogger() *log.Entry {
	return log.
		WithField("backup_dir", m.cfg.Dir).
		WithField("db_path", m.dbPath)
}

// CreateFullBackup копия файла БД (gzip при compress), файл метаданных и удаление старых копий
func (m *Manager) CreateFullBackup(ctx context.Context, compress bool, actor models.Actor) (result backupapimodels.CreateResult, err error) {
	err = lock.Run(ctx, lockKey, lockWait, func() error {
		result, err = m.createFullBackup(ctx, compress, actor)
		return err
	})
	return result, err
}

func (m *Manager) createFullBackup(ctx context.Context, compress bool, actor models.Actor) (result backupapimodels.CreateResult, err error) {
	backupTime := m.now()
	name := namePrefix + backupTime.Format(nameTimeLayout)
	logger := m.getLogger().WithField("backup_name", name)
	var dataPath, metaPath string
	// файлы удаляются только если их начал писать этот вызов
	created := false
	defer func() {
		if err == nil {
			return
		}
		if created {
			_ = os.Remove(dataPath)
			_ = os.Remove(metaPath)
		}
		logger.WithError(err).Error("ошибка создания резервной копии")
		m.audit.LogActorEvent(models.EventBackupFailed, actor, fmt.Sprintf("Ошибка создания резервной копии: %v", err))
	}()

	if m.dbPath == "" {
		return result, errors.New("резервное копирование доступно только для файловой БД")
	}
	if _, err = os.Stat(m.dbPath); err != nil {
		return result, errors.Wrap(err, "файл БД недоступен")
	}
	if err = os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		return result, errors.Wrap(err, "ошибка создания каталога резервных копий")
	}
	name = m.freeName(name)
	logger = logger.WithField("backup_name", name)
	dataPath = m.dataPath(name, compress)
	metaPath = filepath.Join(m.cfg.Dir, name+extMetadata)
	created = true
	if compress {
		err = gzipFile(m.dbPath, dataPath)
	} else {
		err = copyFile(m.dbPath, dataPath)
	}
	if err != nil {
		return result, errors.Wrap(err, "ошибка копирования файла БД")
	}
	stat, err := os.Stat(dataPath)
	if err != nil {
		return result, err
	}
	version, verErr := m.DatabaseVersion()
	if verErr != nil {
		logger.WithError(verErr).Warn("не удалось получить версию схемы БД")
	}
	meta := backupapimodels.Metadata{
		BackupTime:      backupTime,
		BackupType:      backupTypeFull,
		Compressed:      compress,
		FileSize:        stat.Size(),
		DatabaseVersion: version,
	}
	if err = writeMetadata(metaPath, meta); err != nil {
		return result, errors.Wrap(err, "ошибка записи метаданных резервной копии")
	}
	result = backupapimodels.CreateResult{
		BackupName: name,
		FileSize:   stat.Size(),
	}
	logger.WithField("file_size", stat.Size()).Info("резервная копия создана")
	m.audit.LogActorEvent(models.EventBackupCreated, actor,
		fmt.Sprintf("Создана резервная копия %s (%d байт)", name, stat.Size()))

	if m.cfg.Offsite != nil {
		if offErr := m.cfg.Offsite.Upload(ctx, filepath.Base(dataPath), dataPath); offErr != nil {
			logger.WithError(offErr).Error("ошибка отправки резервной копии во внешнее хранилище")
		} else if offErr = m.cfg.Offsite.Upload(ctx, filepath.Base(metaPath), metaPath); offErr != nil {
			logger.WithError(offErr).Error("ошибка отправки метаданных во внешнее хранилище")
		} else {
			result.Offsite = true
		}
	}

	if _, cleanErr := m.CleanupOldBackups(); cleanErr != nil {
		logger.WithError(cleanErr).Warn("ошибка удаления устаревших резервных копий")
	}
	return result, nil
}

// freeName копии в одну секунду получают суффикс _2, _3...
func (m *Manager) freeName(base string) string {
	name := base
	for n := 2; m.nameTaken(name); n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	return name
}

func (m *Manager) nameTaken(name string) bool {
	for _, path := range []string{
		filepath.Join(m.cfg.Dir, name+extMetadata),
		m.dataPath(name, true),
		m.dataPath(name, false),
	} {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// ListBackups копии с метаданными и существующим файлом данных, новые первыми
func (m *Manager) ListBackups() ([]backupapimodels.BackupInfo, error) {
	metaFiles, err := filepath.Glob(filepath.Join(m.cfg.Dir, namePrefix+"*"+extMetadata))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения каталога резервных копий")
	}
	result := make([]backupapimodels.BackupInfo, 0, len(metaFiles))
	for _, metaPath := range metaFiles {
		name := strings.TrimSuffix(filepath.Base(metaPath), extMetadata)
		meta, err := readMetadata(metaPath)
		if err != nil {
			m.getLogger().
				WithField("backup_name", name).
				WithError(err).
				Warn("не удалось прочитать метаданные резервной копии")
			continue
		}
		dataPath := m.dataPath(name, meta.Compressed)
		if _, err = os.Stat(dataPath); err != nil {
			continue
		}
		result = append(result, backupapimodels.BackupInfo{
			Metadata:   meta,
			BackupName: name,
			BackupPath: dataPath,
		})
	}
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].BackupTime.Equal(result[b].BackupTime) {
			return result[a].BackupName > result[b].BackupName
		}
		return result[a].BackupTime.After(result[b].BackupTime)
	})
	return result, nil
}

// FindBackup nil, если копии с таким именем нет
func (m *Manager) FindBackup(name string) (*backupapimodels.BackupInfo, error) {
	if err := backupapimodels.ValidateBackupName(name); err != nil {
		return nil, err
	}
	list, err := m.ListBackups()
	if err != nil {
		return nil, err
	}
	for _, item := range list {
		if item.BackupName == name {
			return &item, nil
		}
	}
	return nil, nil
}

// CleanupOldBackups удаляет копии сверх MaxBackups, начиная с самых старых
func (m *Manager) CleanupOldBackups() (removed int, err error) {
	list, err := m.ListBackups()
	if err != nil {
		m.audit.LogSystemEvent(models.EventBackupCleanupFailed, fmt.Sprintf("Ошибка удаления устаревших копий: %v", err))
		return 0, err
	}
	if len(list) <= m.cfg.MaxBackups {
		return 0, nil
	}
	var failed []string
	for _, item := range list[m.cfg.MaxBackups:] {
		metaPath := filepath.Join(m.cfg.Dir, item.BackupName+extMetadata)
		if rmErr := os.Remove(item.BackupPath); rmErr != nil && !os.IsNotExist(rmErr) {
			failed = append(failed, item.BackupName)
			continue
		}
		if rmErr := os.Remove(metaPath); rmErr != nil && !os.IsNotExist(rmErr) {
			failed = append(failed, item.BackupName)
			continue
		}
		removed++
	}
	if len(failed) > 0 {
		err = errors.Errorf("не удалось удалить копии: %s", strings.Join(failed, ", "))
		m.audit.LogSystemEvent(models.EventBackupCleanupFailed, err.Error())
	}
	if removed > 0 {
		m.audit.LogSystemEvent(models.EventBackupCleanup, fmt.Sprintf("Удалено устаревших резервных копий: %d", removed))
	}
	return removed, err
}

// RestoreBackup заменяет файл БД содержимым копии. Текущий файл сохраняется как <db>.pre_restore_<ts>
// и возвращается на место, если замена не удалась
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string, actor models.Actor) error {
	return lock.Run(ctx, lockKey, lockWait, func() error {
		return m.restoreBackup(backupPath, actor)
	})
}

func (m *Manager) restoreBackup(backupPath string, actor models.Actor) (err error) {
	logger := m.getLogger().WithField("backup_path", backupPath)
	name := filepath.Base(backupPath)
	defer func() {
		if err != nil {
			logger.WithError(err).Error("ошибка восстановления БД")
			m.audit.LogActorEvent(models.EventRestoreFailed, actor, fmt.Sprintf("Ошибка восстановления из %s: %v", name, err))
		}
	}()
	if m.dbPath == "" {
		return errors.New("восстановление доступно только для файловой БД")
	}
	if err = m.VerifyBackupIntegrity(backupPath); err != nil {
		return errors.Wrap(err, "резервная копия повреждена")
	}
	safetyPath := ""
	if _, statErr := os.Stat(m.dbPath); statErr == nil {
		safetyPath = fmt.Sprintf("%s.pre_restore_%s", m.dbPath, m.now().Format(nameTimeLayout))
		if err = copyFile(m.dbPath, safetyPath); err != nil {
			return errors.Wrap(err, "ошибка создания страховочной копии БД")
		}
	}
	if err = m.replaceDB(backupPath, m.dbPath, strings.HasSuffix(backupPath, extGzip)); err != nil {
		if safetyPath != "" {
			if rbErr := copyFile(safetyPath, m.dbPath); rbErr != nil {
				logger.WithError(rbErr).Error("ошибка возврата страховочной копии БД")
				return errors.Wrapf(err, "файл БД не восстановлен, страховочная копия: %s", safetyPath)
			}
		}
		return err
	}
	if m.cfg.AfterRestore != nil {
		if hookErr := m.cfg.AfterRestore(); hookErr != nil {
			logger.WithError(hookErr).Warn("ошибка переподключения к БД после восстановления")
		}
	}
	logger.Info("БД восстановлена из резервной копии")
	m.audit.LogActorEvent(models.EventDatabaseRestored, actor, fmt.Sprintf("БД восстановлена из %s", name))
	return nil
}

func (m *Manager) dataPath(name string, compressed bool) string {
	ext := extDB
	if compressed {
		ext = extGzip
	}
	return filepath.Join(m.cfg.Dir, name+ext)
}

func writeMetadata(path string, meta backupapimodels.Metadata) error {
	body, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func readMetadata(path string) (meta backupapimodels.Metadata, err error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(body, &meta)
	return meta, err
}

// writeDBFile пишет во временный файл рядом с dst и переименовывает его
func writeDBFile(src, dst string, compressed bool) error {
	tmp := dst + ".restore_tmp"
	var err error
	if compressed {
		err = gunzipFile(src, tmp)
	} else {
		err = copyFile(src, tmp)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err = os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	zw.Name = filepath.Base(src)
	if _, err = io.Copy(zw, in); err != nil {
		out.Close()
		return err
	}
	if err = zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func gunzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, zr); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
