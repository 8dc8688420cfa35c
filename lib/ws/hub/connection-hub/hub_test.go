package connectionhub

import (
	wsmodels "hr-payroll-backend/models/ws"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run("нет подключения", func(t *testing.T) {
		hub := newHub(nil)
		require.False(t, hub.IsConnected("u1"))
		require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1"}))
		hub.DeleteClient("u1", nil)
		hub.SendClose("u1")
	})
	t.Run("сессия без соединения", func(t *testing.T) {
		hub := newHub(nil)
		hub.mu.Lock()
		hub.clients["u1"] = newSession(nil)
		hub.mu.Unlock()
		require.False(t, hub.IsConnected("u1"))
		require.True(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1"}))
		hub.Shutdown()
		require.False(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1"}))
	})
}
