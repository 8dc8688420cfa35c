package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const sendBufferSize = 16

type clientSession struct {
	conn *websocket.Conn

	// исходящие сообщения, буферизованы
	sendCh chan any
	ctx    context.Context
	stop   func()
}

func newSession(conn *websocket.Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := clientSession{
		stop:   cancelFn,
		ctx:    ctx,
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
	}
	go sess.startSend()
	return sess
}

func (s clientSession) isAlive() bool {
	if s.ctx.Err() != nil {
		return false
	}
	return s.conn != nil && s.conn.Conn != nil
}

// enqueue не блокирует: при переполненном буфере сообщение отбрасывается
func (s clientSession) enqueue(msg any) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.sendCh <- msg:
		return true
	default:
		log.Warn("ws: буфер отправки переполнен, сообщение отброшено")
		return false
	}
}

func (s clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s clientSession) send(msg any) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.Debugf("отправлено сообщение: %+v", msg)
	return nil
}

func (s clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("ws: соединение уже закрыто")
	}
}
