package pushhandler

import (
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	wsmodels "hr-payroll-backend/models/ws"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created []dbmodels.PushData
}

func (f *fakeStore) Create(rec dbmodels.PushData) error {
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeStore) List(userID string) ([]dbmodels.PushData, error) { return nil, nil }

func (f *fakeStore) Delete(ids []string) error { return nil }

type fakeHub struct {
	online map[string]bool
	sent   []wsmodels.ServerMessage
}

func (f *fakeHub) AddClient(userID string, conn *websocket.Conn)    {}
func (f *fakeHub) DeleteClient(userID string, conn *websocket.Conn) {}
func (f *fakeHub) SendClose(userID string)                          {}
func (f *fakeHub) Shutdown()                                        {}
func (f *fakeHub) IsConnected(userID string) bool                   { return f.online[userID] }

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) bool {
	if !f.online[msg.ToUserID] {
		return false
	}
	f.sent = append(f.sent, msg)
	return true
}

func TestSendNotification(t *testing.T) {
	store := &fakeStore{}
	hub := &fakeHub{online: map[string]bool{"online": true}}
	i := impl{store: store, hub: hub}

	t.Run("пользователь подключен", func(t *testing.T) {
		i.SendNotification("online", models.PushPayrollGenerated, "2024-05")
		require.Len(t, hub.sent, 1)
		require.Equal(t, "Сформирована ведомость за период 2024-05.", hub.sent[0].Msg)
		require.Empty(t, store.created)
	})
	t.Run("пользователь не подключен", func(t *testing.T) {
		i.SendNotification("offline", models.PushPayrollGenerated, "2024-05")
		require.Len(t, store.created, 1)
		require.Equal(t, "offline", store.created[0].UserID)
		require.Equal(t, models.PushPayrollGenerated, store.created[0].Code)
	})
	t.Run("данные не сохраняются", func(t *testing.T) {
		i.SendData("offline", models.PushChatMessage, map[string]string{"a": "b"}, "Иван", "привет")
		require.Len(t, store.created, 1)
		i.SendData("online", models.PushChatMessage, map[string]string{"a": "b"}, "Иван", "привет")
		require.Len(t, hub.sent, 2)
		require.Equal(t, "Иван: привет", hub.sent[1].Msg)
		require.NotNil(t, hub.sent[1].Data)
	})
}
