package chathandler

import (
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	chatapimodels "hr-payroll-backend/models/api/chat"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"net/http"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rooms    []*dbmodels.ChatRoom
	members  []dbmodels.RoomMembership
	messages []dbmodels.ChatMessage
	people   map[string]*dbmodels.Employee
}

func (f *fakeStore) CreateRoom(rec dbmodels.ChatRoom) (string, error) {
	rec.ID = "r" + strconv.Itoa(len(f.rooms)+1)
	f.rooms = append(f.rooms, &rec)
	return rec.ID, nil
}

func (f *fakeStore) findRoom(match func(rec *dbmodels.ChatRoom) bool) *dbmodels.ChatRoom {
	for _, rec := range f.rooms {
		if match(rec) {
			result := *rec
			return &result
		}
	}
	return nil
}

func (f *fakeStore) GetRoom(id string) (*dbmodels.ChatRoom, error) {
	return f.findRoom(func(rec *dbmodels.ChatRoom) bool { return rec.ID == id }), nil
}

func (f *fakeStore) GetActiveRoomByCode(joinCode string) (*dbmodels.ChatRoom, error) {
	return f.findRoom(func(rec *dbmodels.ChatRoom) bool {
		return rec.IsActive && rec.JoinCode != nil && *rec.JoinCode == joinCode
	}), nil
}

func (f *fakeStore) GetGeneralRoom() (*dbmodels.ChatRoom, error) {
	return f.findRoom(func(rec *dbmodels.ChatRoom) bool { return rec.RoomType == models.ChatRoomGeneral }), nil
}

func (f *fakeStore) ExistJoinCode(joinCode string) (bool, error) {
	return f.findRoom(func(rec *dbmodels.ChatRoom) bool {
		return rec.JoinCode != nil && *rec.JoinCode == joinCode
	}) != nil, nil
}

func (f *fakeStore) AddMember(rec dbmodels.RoomMembership) error {
	if ok, _ := f.IsMember(rec.RoomID, rec.MemberID); ok {
		return nil
	}
	rec.Member = f.people[rec.MemberID]
	f.members = append(f.members, rec)
	return nil
}

func (f *fakeStore) IsMember(roomID, memberID string) (bool, error) {
	for _, rec := range f.members {
		if rec.RoomID == roomID && rec.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) MarkRead(roomID, memberID string, at time.Time) error {
	for idx := range f.members {
		if f.members[idx].RoomID == roomID && f.members[idx].MemberID == memberID {
			f.members[idx].LastReadAt = at
		}
	}
	return nil
}

func (f *fakeStore) FindDirectRoom(memberID, otherID string) (string, error) {
	for _, room := range f.rooms {
		if room.RoomType != models.ChatRoomDirect {
			continue
		}
		first, _ := f.IsMember(room.ID, memberID)
		second, _ := f.IsMember(room.ID, otherID)
		if first && second {
			return room.ID, nil
		}
	}
	return "", nil
}

func (f *fakeStore) ListMemberRooms(memberID string) (list []dbmodels.RoomWithStats, err error) {
	for _, room := range f.rooms {
		if ok, _ := f.IsMember(room.ID, memberID); ok {
			list = append(list, dbmodels.RoomWithStats{ChatRoom: *room})
		}
	}
	return list, nil
}

func (f *fakeStore) ListPublicRooms() (list []dbmodels.RoomWithStats, err error) {
	for _, room := range f.rooms {
		if room.RoomType == models.ChatRoomGeneral {
			list = append(list, dbmodels.RoomWithStats{ChatRoom: *room})
		}
	}
	return list, nil
}

func (f *fakeStore) ListMembers(roomID string) (list []dbmodels.RoomMembership, err error) {
	for _, rec := range f.members {
		if rec.RoomID == roomID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) CreateMessage(rec dbmodels.ChatMessage) (string, error) {
	rec.ID = "m" + strconv.Itoa(len(f.messages)+1)
	f.messages = append(f.messages, rec)
	return rec.ID, nil
}

func (f *fakeStore) ListMessages(roomID string, since *time.Time) (list []dbmodels.ChatMessage, err error) {
	for _, rec := range f.messages {
		if rec.RoomID == roomID && (since == nil || rec.SentAt.After(*since)) {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeEmployees struct {
	people map[string]*dbmodels.Employee
}

func (f *fakeEmployees) GetByID(id string) (*dbmodels.Employee, error) { return f.people[id], nil }
func (f *fakeEmployees) ListActive() (list []dbmodels.Employee, err error) {
	for _, id := range []string{"e1", "e2", "e3"} {
		list = append(list, *f.people[id])
	}
	return list, nil
}
func (f *fakeEmployees) Create(rec dbmodels.Employee) (string, error)              { return "", nil }
func (f *fakeEmployees) Update(id string, updMap map[string]interface{}) error     { return nil }
func (f *fakeEmployees) GetByUsername(username string) (*dbmodels.Employee, error) { return nil, nil }
func (f *fakeEmployees) ExistByUsername(username, excludeID string) (bool, error)  { return false, nil }
func (f *fakeEmployees) ExistByNfcID(nfcID, excludeID string) (bool, error)        { return false, nil }
func (f *fakeEmployees) ListEmployeeIDs() ([]string, error)                        { return nil, nil }
func (f *fakeEmployees) ListWithPlainPasswords() ([]dbmodels.Employee, error)      { return nil, nil }
func (f *fakeEmployees) CountByRole(role models.UserRole) (int64, error)           { return 0, nil }
func (f *fakeEmployees) FindActiveByCode(employeeID, nfcID string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) List(filter employeeapimodels.EmployeeFilter, page, limit int) ([]dbmodels.Employee, int64, error) {
	return nil, 0, nil
}

type fakePush struct {
	users   []string
	payload []chatapimodels.PushMessage
}

func (f *fakePush) SendNotification(userID string, code models.PushCode, args ...any) {}

func (f *fakePush) SendData(userID string, code models.PushCode, data any, args ...any) {
	f.users = append(f.users, userID)
	f.payload = append(f.payload, data.(chatapimodels.PushMessage))
}

func newImpl() (impl, *fakeStore, *fakePush) {
	people := map[string]*dbmodels.Employee{
		"e1": {BaseModel: dbmodels.BaseModel{ID: "e1"}, EmployeeID: "EMP001", Name: "Анна", Status: models.EmployeeActive},
		"e2": {BaseModel: dbmodels.BaseModel{ID: "e2"}, EmployeeID: "EMP002", Name: "Борис", Status: models.EmployeeActive},
		"e3": {BaseModel: dbmodels.BaseModel{ID: "e3"}, EmployeeID: "EMP003", Name: "Вера", Status: models.EmployeeActive},
	}
	store := &fakeStore{people: people}
	push := &fakePush{}
	clock := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	return impl{
		store:     store,
		employees: &fakeEmployees{people: people},
		push:      push,
		now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}, store, push
}

func TestGenerateJoinCode(t *testing.T) {
	code, err := GenerateJoinCode()
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), code)
}

func TestGeneralRoom(t *testing.T) {
	i, store, _ := newImpl()
	require.NoError(t, i.JoinGeneralRoom("e1"))
	require.Empty(t, store.members)

	require.NoError(t, i.EnsureGeneralRoom("e1", []string{"e1", "e2"}))
	require.NoError(t, i.EnsureGeneralRoom("e1", []string{"e1", "e2"}))
	require.Len(t, store.rooms, 1)
	require.Equal(t, models.GeneralRoomName, store.rooms[0].RoomName)
	require.Len(t, store.members, 2)

	require.NoError(t, i.JoinGeneralRoom("e3"))
	require.NoError(t, i.JoinGeneralRoom("e3"))
	require.Len(t, store.members, 3)
}

func TestRoomsAndMessages(t *testing.T) {
	i, store, push := newImpl()

	room, err := i.CreateRoom(chatapimodels.CreateRoomRequest{Name: " Проект "}, "e1")
	require.NoError(t, err)
	require.Equal(t, "Проект", room.Name)
	require.Equal(t, models.ChatRoomGroup, room.Type)
	require.Len(t, room.JoinCode, 8)

	t.Run("вход по коду", func(t *testing.T) {
		_, err := i.JoinRoom("zzzzzzzz", "e2")
		require.True(t, apperror.IsNotFound(err))
		joined, err := i.JoinRoom(" "+room.JoinCode+" ", "e2")
		require.NoError(t, err)
		require.Equal(t, room.ID, joined.ID)
	})
	t.Run("доступ только участникам", func(t *testing.T) {
		_, err := i.Room(room.ID, "e3")
		require.ErrorIs(t, err, ErrNotMember)
		_, err = i.Send(room.ID, "e3", "привет")
		require.ErrorIs(t, err, ErrNotMember)
		_, err = i.Room("r99", "e1")
		require.ErrorIs(t, err, ErrRoomNotFound)
	})
	t.Run("пустое сообщение", func(t *testing.T) {
		_, err := i.Send(room.ID, "e1", "   ")
		require.Equal(t, http.StatusBadRequest, apperror.Status(err))
		require.Empty(t, store.messages)
	})
	t.Run("отправка и уведомление", func(t *testing.T) {
		msg, err := i.Send(room.ID, "e1", " привет ")
		require.NoError(t, err)
		require.Equal(t, "привет", msg.Message)
		require.True(t, msg.IsOwn)
		require.Equal(t, "Анна", msg.SenderName)
		require.Equal(t, []string{"e2"}, push.users)
		require.False(t, push.payload[0].Message.IsOwn)
		require.Equal(t, room.ID, push.payload[0].RoomID)
	})
	t.Run("чат с сообщениями", func(t *testing.T) {
		details, err := i.Room(room.ID, "e2")
		require.NoError(t, err)
		require.Len(t, details.Messages, 1)
		require.Len(t, details.Members, 2)
		require.Equal(t, int64(2), details.Room.MemberCount)
	})
	t.Run("новые сообщения", func(t *testing.T) {
		since := store.messages[0].SentAt
		list, err := i.MessagesSince(room.ID, "e2", since)
		require.NoError(t, err)
		require.Empty(t, list)
		_, err = i.Send(room.ID, "e2", "ответ")
		require.NoError(t, err)
		list, err = i.MessagesSince(room.ID, "e1", since)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "ответ", list[0].Message)
	})
}

func TestStartDirect(t *testing.T) {
	i, store, _ := newImpl()

	_, err := i.StartDirect("e1", "e1")
	require.Equal(t, http.StatusBadRequest, apperror.Status(err))
	_, err = i.StartDirect("e1", "e9")
	require.True(t, apperror.IsNotFound(err))

	roomID, err := i.StartDirect("e1", "e2")
	require.NoError(t, err)
	again, err := i.StartDirect("e2", "e1")
	require.NoError(t, err)
	require.Equal(t, roomID, again)
	require.Len(t, store.rooms, 1)
	require.Nil(t, store.rooms[0].JoinCode)

	overview, err := i.Rooms("e2")
	require.NoError(t, err)
	require.Len(t, overview.MyRooms, 1)
	require.Equal(t, "Анна", overview.MyRooms[0].DisplayName)
	require.Len(t, overview.Employees, 2)
	require.Empty(t, overview.PublicRooms)
}
