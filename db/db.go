package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

var DB *gorm.DB

var sqlitePath string

type ConnConfig struct {
	Driver    string
	Path      string // файл БД для sqlite
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func Connect(cfg ConnConfig) (err error) {
	if DB != nil {
		return nil
	}
	dialector, err := getDialector(cfg)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gorm_logrus.New(),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if cfg.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		DB = db.Debug()
	} else {
		DB = db
	}
	if cfg.Driver == DriverSqlite {
		sqlitePath = cfg.Path
	}
	if cfg.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("driver", cfg.Driver).Info("Сервис успешно подключен к БД")
	return nil
}

func getDialector(cfg ConnConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSqlite, "":
		if cfg.Path == "" {
			return nil, errors.New("не указан путь к файлу БД sqlite")
		}
		return sqlite.Open(fmt.Sprintf("%s?_busy_timeout=5000", cfg.Path)), nil
	case DriverPostgres:
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Database, cfg.Password)
		return postgres.Open(dbConnString), nil
	}
	return nil, errors.Errorf("неизвестный драйвер БД: %s", cfg.Driver)
}

// FilePath путь к файлу БД, пустая строка для postgres
func FilePath() string {
	return sqlitePath
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}

// ResetConnections закрывает простаивающие соединения пула,
// чтобы следующие запросы открыли файл БД заново (после восстановления из копии)
func ResetConnections() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxIdleConns(2)
	return nil
}

func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.WithError(err).Error("ошибка получения пула соединений БД")
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.WithError(err).Error("ошибка закрытия соединения с БД")
		return
	}
	DB = nil
	log.Info("Соединение с БД закрыто")
}
