package initializers

import (
	"hr-payroll-backend/config"
	"hr-payroll-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	smtp.Connect(smtp.Config{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
		SenderName: "HR Payroll",
	})
	if !smtp.Instance.IsConfigured() {
		log.Info("SMTP не настроен, письма отправляться не будут")
	}
}
