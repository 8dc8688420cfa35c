package smtp

import (
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

var ErrNotConfigured = errors.New("smtp клиент не настроен")

type Provider interface {
	SendEMail(to, subject, message string) error
	IsConfigured() bool
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
	SenderName string
}

func Connect(cfg Config) {
	Instance = &impl{cfg: cfg}
}

type impl struct {
	cfg Config
}

func (i impl) IsConfigured() bool {
	return i.cfg.User != "" && i.cfg.Host != "" && i.cfg.Port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.
		WithField("recipient", to).
		WithField("subject", subject)
	if !i.IsConfigured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("не указан адрес получателя")
	}
	auth := sasl.NewPlainClient("", i.cfg.User, i.cfg.Password)
	body := strings.NewReader(buildMessage(i.cfg.SenderName, i.cfg.User, to, subject, message, time.Now()))
	addr := i.cfg.Host + ":" + i.cfg.Port
	if i.cfg.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, i.cfg.User, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, i.cfg.User, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(senderName, from, to, subject, message string, date time.Time) string {
	if senderName != "" {
		subject = senderName + " - " + subject
	}
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		fmt.Sprintf("Date: %s", date.Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"Content-Transfer-Encoding: 8bit",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + strings.ReplaceAll(message, "\n", "\r\n") + "\r\n"
}
