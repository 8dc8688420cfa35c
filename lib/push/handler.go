package pushhandler

import (
	pushdatastore "hr-payroll-backend/lib/push/data-store"
	connectionhub "hr-payroll-backend/lib/ws/hub/connection-hub"
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	wsmodels "hr-payroll-backend/models/ws"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// SendNotification доставляет уведомление сразу или сохраняет до подключения пользователя
	SendNotification(userID string, code models.PushCode, args ...any)
	// SendData только для подключенных пользователей, без сохранения
	SendData(userID string, code models.PushCode, data any, args ...any)
}

var Instance Provider

func NewHandler(store pushdatastore.Provider, hub connectionhub.Provider) {
	Instance = impl{
		store: store,
		hub:   hub,
	}
}

type impl struct {
	store pushdatastore.Provider
	hub   connectionhub.Provider
}

func (i impl) getLogger(userID string, code models.PushCode) *log.Entry {
	logger := log.
		WithField("user_id", userID).
		WithField("event_code", code)
	return logger
}

func (i impl) SendNotification(userID string, code models.PushCode, args ...any) {
	if userID == "" {
		return
	}
	data := models.GetPushData(code, args...)
	if i.hub != nil && i.hub.SendMessage(i.serverMessage(userID, data, nil)) {
		return
	}
	err := i.store.Create(dbmodels.PushData{
		UserID: userID,
		Code:   data.Code,
		Title:  data.Title,
		Msg:    data.Msg,
	})
	if err != nil {
		i.getLogger(userID, code).WithError(err).Error("ошибка сохранения уведомления")
	}
}

func (i impl) SendData(userID string, code models.PushCode, payload any, args ...any) {
	if userID == "" || i.hub == nil {
		return
	}
	i.hub.SendMessage(i.serverMessage(userID, models.GetPushData(code, args...), payload))
}

func (i impl) serverMessage(userID string, data models.NotificationData, payload any) wsmodels.ServerMessage {
	return wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     time.Now().Format("02.01.2006 15:04:05"),
		Code:     string(data.Code),
		Title:    data.Title,
		Msg:      data.Msg,
		Data:     payload,
	}
}
