package initializers

import (
	"context"
	"hr-payroll-backend/config"
	s3client "hr-payroll-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 без адреса S3 файлы хранятся локально
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Info("S3 не настроен, файлы сохраняются в локальный каталог")
		return
	}
	client, err := s3client.NewClient(s3client.Config{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	if err = client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
		return
	}

	s3client.Client = client
	log.Info("S3 клиент успешно инициализирован")
}
