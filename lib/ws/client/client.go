package wsclient

import (
	"strings"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

func NewClient(userID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

type WsClient struct {
	conn   *websocket.Conn
	userID string
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает входящие сообщения до закрытия соединения. Клиент шлет только ping
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		if strings.TrimSpace(string(data)) == "ping" {
			if err = c.conn.WriteMessage(websocket.TextMessage, []byte("pong")); err != nil {
				logger.WithError(err).Error("ошибка ответа на ping")
				break
			}
			continue
		}
		logger.WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
