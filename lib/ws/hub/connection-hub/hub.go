package connectionhub

import (
	pushdatastore "hr-payroll-backend/lib/push/data-store"
	wsmodels "hr-payroll-backend/models/ws"
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage) bool
	SendClose(userID string)
	IsConnected(userID string) bool
	Shutdown()
}

var Instance Provider

func Init(store pushdatastore.Provider) {
	Instance = newHub(store)
}

func newHub(store pushdatastore.Provider) *impl {
	return &impl{
		clients: map[string]clientSession{},
		store:   store,
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[userID]
	store   pushdatastore.Provider
}

// DeleteClient удаляет сессию, только если она принадлежит conn (повторное подключение уже могло ее заменить)
func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	ok = ok && sess.conn == conn
	if ok {
		delete(i.clients, userID)
	}
	i.mu.Unlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = newSession(conn)
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	go i.sendDelayedMessages(userID)
}

// SendMessage возвращает false, если пользователь не подключен
func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	return sess.enqueue(msg)
}

func (i *impl) SendClose(userID string) {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	return ok && sess.isAlive()
}

func (i *impl) Shutdown() {
	i.mu.Lock()
	sessions := i.clients
	i.clients = map[string]clientSession{}
	i.mu.Unlock()
	for _, sess := range sessions {
		sess.stop()
	}
	log.Info("ws: все соединения закрыты")
}

func (i *impl) sendDelayedMessages(userID string) {
	if i.store == nil {
		return
	}
	logger := log.WithField("user_id", userID)
	list, err := i.store.List(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка не отправленных событий")
		return
	}
	sendedIDs := []string{}
	for _, item := range list {
		msg := wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     item.CreatedAt.Format("02.01.2006 15:04:05"),
			Code:     string(item.Code),
			Title:    item.Title,
			Msg:      item.Msg,
		}
		if !i.SendMessage(msg) {
			break
		}
		sendedIDs = append(sendedIDs, item.ID)
	}
	if len(sendedIDs) > 0 {
		err = i.store.Delete(sendedIDs)
		if err != nil {
			logger.WithError(err).Error("ошибка удаления отправленных событий")
			return
		}
	}
}
