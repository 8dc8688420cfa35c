package audit

import (
	securitystore "hr-payroll-backend/lib/security/store"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"

	log "github.com/sirupsen/logrus"
)

const (
	maxUserAgentLength   = 255
	maxDescriptionLength = 1000
)

// Provider журнал событий безопасности. Ошибка записи в журнал не прерывает основную операцию
type Provider interface {
	LogEvent(event models.SecurityEvent, userID, ip, userAgent, description string)
	LogActorEvent(event models.SecurityEvent, actor models.Actor, description string)
	LogSystemEvent(event models.SecurityEvent, description string)
}

var Instance Provider

func NewHandler(store securitystore.Provider) {
	Instance = impl{
		store: store,
	}
}

type impl struct {
	store securitystore.Provider
}

func (i impl) LogEvent(event models.SecurityEvent, userID, ip, userAgent, description string) {
	rec := dbmodels.SecurityLog{
		EventType:        event,
		UserID:           userID,
		IPAddress:        ip,
		UserAgent:        truncate(userAgent, maxUserAgentLength),
		EventDescription: truncate(description, maxDescriptionLength),
	}
	logger := log.
		WithField("event_type", event).
		WithField("user_id", userID).
		WithField("ip", ip)
	if err := i.store.Create(rec); err != nil {
		logger.WithError(err).Error("ошибка записи события в журнал безопасности")
		return
	}
	logger.Info(description)
}

func (i impl) LogActorEvent(event models.SecurityEvent, actor models.Actor, description string) {
	i.LogEvent(event, actor.UserID, actor.IP, actor.UserAgent, description)
}

func (i impl) LogSystemEvent(event models.SecurityEvent, description string) {
	i.LogEvent(event, "", models.SystemSource, "", description)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
