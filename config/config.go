package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"8080"  env:"APP_PORT"`
		SwaggerEnabled *bool  `default:"false" env:"APP_SWAGGER_ENABLED"`
		LogLevel       string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Driver         string `default:"sqlite" env:"DB_DRIVER"` // sqlite | postgres
		Path           string `default:"payroll_system.db" env:"DB_PATH"`
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"payroll" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"dev-secret-key-change-in-production" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"28800" env:"JWT_EXPIRE_IN_SEC"` // 8 часов
		JWTRefreshExpireInSec int    `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Username string `default:"admin" env:"ADMIN_USERNAME"`
		Password string `default:"admin123" env:"ADMIN_PASSWORD"`
		Name     string `default:"System Administrator" env:"ADMIN_NAME"`
		Email    string `default:"" env:"ADMIN_EMAIL"`
	}
	Payroll struct {
		OfficeHoursPerDay  float64 `default:"8" env:"PAYROLL_OFFICE_HOURS"`
		OvertimeMultiplier float64 `default:"1.5" env:"PAYROLL_OVERTIME_MULTIPLIER"`
		TaxRate            float64 `default:"0.12" env:"PAYROLL_TAX_RATE"`
		InsuranceRate      float64 `default:"0.03" env:"PAYROLL_INSURANCE_RATE"`
		RetirementRate     float64 `default:"0.05" env:"PAYROLL_RETIREMENT_RATE"`
		BonusDaysThreshold int     `default:"20" env:"PAYROLL_BONUS_DAYS_THRESHOLD"`
		BonusDailyRates    float64 `default:"2" env:"PAYROLL_BONUS_DAILY_RATES"`
	}
	Backup struct {
		Enabled       *bool  `default:"true" env:"BACKUP_ENABLED"`
		Dir           string `default:"backups" env:"BACKUP_DIR"`
		MaxBackups    int    `default:"30" env:"BACKUP_MAX_COUNT"`
		IntervalHours int    `default:"24" env:"BACKUP_INTERVAL_HOURS"`
		RetryMinutes  int    `default:"60" env:"BACKUP_RETRY_MINUTES"`
		Compress      *bool  `default:"true" env:"BACKUP_COMPRESS"`
		NotifyEmail   string `default:"" env:"BACKUP_NOTIFY_EMAIL"`
		S3Enabled     *bool  `default:"false" env:"BACKUP_S3_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"payroll" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Upload struct {
		Dir       string `default:"static/uploads" env:"UPLOAD_DIR"`
		MaxSizeMb int    `default:"16" env:"UPLOAD_MAX_SIZE_MB"`
	}
	RateLimit struct {
		PerMinute      int `default:"100" env:"RATE_LIMIT_PER_MINUTE"`
		LoginPerMinute int `default:"5" env:"RATE_LIMIT_LOGIN_PER_MINUTE"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env необязателен, переменные окружения процесса имеют приоритет
	if err := godotenv.Load(); err != nil {
		log.Debug(".env не найден, используются переменные окружения")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
