package chathandler

import (
	"crypto/rand"
	"math/big"
	chatstore "hr-payroll-backend/lib/chat/store"
	employeestore "hr-payroll-backend/lib/employee/store"
	pushhandler "hr-payroll-backend/lib/push"
	"hr-payroll-backend/lib/utils/apperror"
	"hr-payroll-backend/models"
	chatapimodels "hr-payroll-backend/models/api/chat"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	dbmodels "hr-payroll-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	joinCodeLength   = 8
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeAttempts = 5
)

var (
	ErrRoomNotFound = apperror.NotFound("чат не найден")
	ErrNotMember    = apperror.Forbidden("вы не являетесь участником этого чата")
)

type Provider interface {
	CreateRoom(req chatapimodels.CreateRoomRequest, creatorID string) (chatapimodels.RoomView, error)
	JoinRoom(joinCode, memberID string) (chatapimodels.RoomView, error)
	JoinGeneralRoom(memberID string) error
	EnsureGeneralRoom(creatorID string, memberIDs []string) error
	StartDirect(memberID, otherID string) (roomID string, err error)
	Rooms(memberID string) (chatapimodels.RoomsOverview, error)
	Room(roomID, memberID string) (chatapimodels.RoomDetails, error)
	Send(roomID, senderID, text string) (chatapimodels.MessageView, error)
	MessagesSince(roomID, memberID string, since time.Time) ([]chatapimodels.MessageView, error)
}

var Instance Provider

func NewHandler(store chatstore.Provider, employees employeestore.Provider, push pushhandler.Provider) {
	Instance = impl{
		store:     store,
		employees: employees,
		push:      push,
		now:       time.Now,
	}
}

type impl struct {
	store     chatstore.Provider
	employees employeestore.Provider
	push      pushhandler.Provider
	now       func() time.Time
}

// GenerateJoinCode код приглашения из 8 символов [A-Z0-9]
func GenerateJoinCode() (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	code := make([]byte, joinCodeLength)
	for idx := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "ошибка генерации кода приглашения")
		}
		code[idx] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func (i impl) CreateRoom(req chatapimodels.CreateRoomRequest, creatorID string) (chatapimodels.RoomView, error) {
	if req.Type == "" {
		req.Type = models.ChatRoomGroup
	}
	rec, err := i.createRoom(strings.TrimSpace(req.Name), req.Type, creatorID, true)
	if err != nil {
		return chatapimodels.RoomView{}, err
	}
	if err = i.addMember(rec.ID, creatorID); err != nil {
		return chatapimodels.RoomView{}, err
	}
	log.
		WithField("room_id", rec.ID).
		WithField("creator_id", creatorID).
		Info("создан чат")
	return rec.ToModel(), nil
}

func (i impl) JoinRoom(joinCode, memberID string) (chatapimodels.RoomView, error) {
	joinCode = strings.ToUpper(strings.TrimSpace(joinCode))
	if joinCode == "" {
		return chatapimodels.RoomView{}, apperror.BadRequest("не указан код приглашения")
	}
	rec, err := i.store.GetActiveRoomByCode(joinCode)
	if err != nil {
		return chatapimodels.RoomView{}, errors.Wrap(err, "ошибка поиска чата")
	}
	if rec == nil {
		return chatapimodels.RoomView{}, apperror.NotFound("неверный код приглашения или чат неактивен")
	}
	if err = i.addMember(rec.ID, memberID); err != nil {
		return chatapimodels.RoomView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) JoinGeneralRoom(memberID string) error {
	rec, err := i.store.GetGeneralRoom()
	if err != nil {
		return errors.Wrap(err, "ошибка поиска общего чата")
	}
	if rec == nil {
		return nil
	}
	return i.addMember(rec.ID, memberID)
}

// EnsureGeneralRoom создает общий чат со всеми переданными участниками, если его еще нет
func (i impl) EnsureGeneralRoom(creatorID string, memberIDs []string) error {
	rec, err := i.store.GetGeneralRoom()
	if err != nil {
		return errors.Wrap(err, "ошибка поиска общего чата")
	}
	if rec != nil {
		return nil
	}
	rec, err = i.createRoom(models.GeneralRoomName, models.ChatRoomGeneral, creatorID, true)
	if err != nil {
		return err
	}
	for _, memberID := range memberIDs {
		if err = i.addMember(rec.ID, memberID); err != nil {
			return err
		}
	}
	log.WithField("room_id", rec.ID).Info("создан общий чат")
	return nil
}

// StartDirect возвращает существующий личный чат или создает новый
func (i impl) StartDirect(memberID, otherID string) (string, error) {
	if memberID == otherID {
		return "", apperror.BadRequest("нельзя начать чат с самим собой")
	}
	roomID, err := i.store.FindDirectRoom(memberID, otherID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка поиска личного чата")
	}
	if roomID != "" {
		return roomID, nil
	}
	other, err := i.employees.GetByID(otherID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения сотрудника")
	}
	if other == nil || !other.IsActive() {
		return "", apperror.NotFound("сотрудник не найден")
	}
	rec, err := i.createRoom(other.Name, models.ChatRoomDirect, memberID, false)
	if err != nil {
		return "", err
	}
	for _, id := range []string{memberID, otherID} {
		if err = i.addMember(rec.ID, id); err != nil {
			return "", err
		}
	}
	return rec.ID, nil
}

func (i impl) Rooms(memberID string) (result chatapimodels.RoomsOverview, err error) {
	myRooms, err := i.store.ListMemberRooms(memberID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка чатов")
	}
	result.MyRooms = make([]chatapimodels.RoomView, 0, len(myRooms))
	for _, room := range myRooms {
		if room.RoomType == models.ChatRoomDirect {
			partner, err := i.directPartner(room.ID, memberID)
			if err != nil {
				return result, err
			}
			if partner != nil {
				room.DisplayName = partner.Name
				room.ParticipantPicture = partner.ProfilePicture
			}
		}
		result.MyRooms = append(result.MyRooms, room.ToModel())
	}
	publicRooms, err := i.store.ListPublicRooms()
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения общих чатов")
	}
	result.PublicRooms = make([]chatapimodels.RoomView, 0, len(publicRooms))
	for _, room := range publicRooms {
		result.PublicRooms = append(result.PublicRooms, room.ToModel())
	}
	employees, err := i.employees.ListActive()
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	result.Employees = make([]employeeapimodels.Brief, 0, len(employees))
	for _, employee := range employees {
		if employee.ID != memberID {
			result.Employees = append(result.Employees, employee.ToBrief())
		}
	}
	return result, nil
}

// Room чат с сообщениями и участниками, чат отмечается прочитанным
func (i impl) Room(roomID, memberID string) (result chatapimodels.RoomDetails, err error) {
	room, err := i.checkAccess(roomID, memberID)
	if err != nil {
		return result, err
	}
	messages, err := i.store.ListMessages(roomID, nil)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения сообщений")
	}
	members, err := i.store.ListMembers(roomID)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения участников чата")
	}
	result.Room = room.ToModel()
	result.Messages = toMessageViews(messages, memberID)
	result.Members = make([]chatapimodels.MemberView, 0, len(members))
	for _, member := range members {
		if member.Member == nil {
			continue
		}
		result.Members = append(result.Members, chatapimodels.MemberView{
			Name:           member.Member.Name,
			EmployeeID:     member.Member.EmployeeID,
			Role:           member.Member.Role,
			ProfilePicture: member.Member.ProfilePicture,
		})
		if room.RoomType == models.ChatRoomDirect && member.MemberID != memberID {
			result.Room.DisplayName = member.Member.Name
			result.Room.ParticipantPicture = member.Member.ProfilePicture
		}
	}
	result.Room.MemberCount = int64(len(members))
	if err = i.store.MarkRead(roomID, memberID, i.now()); err != nil {
		log.WithField("room_id", roomID).WithError(err).Warn("ошибка отметки чата прочитанным")
	}
	return result, nil
}

func (i impl) Send(roomID, senderID, text string) (chatapimodels.MessageView, error) {
	req := chatapimodels.SendMessageRequest{Message: text}
	if err := req.Validate(); err != nil {
		return chatapimodels.MessageView{}, apperror.BadRequest(err.Error())
	}
	if _, err := i.checkAccess(roomID, senderID); err != nil {
		return chatapimodels.MessageView{}, err
	}
	sender, err := i.employees.GetByID(senderID)
	if err != nil {
		return chatapimodels.MessageView{}, errors.Wrap(err, "ошибка получения отправителя")
	}
	rec := dbmodels.ChatMessage{
		RoomID:     roomID,
		SenderID:   senderID,
		Sender:     sender,
		SenderType: models.MemberEmployee,
		Message:    strings.TrimSpace(text),
		SentAt:     i.now(),
	}
	rec.ID, err = i.store.CreateMessage(rec)
	if err != nil {
		return chatapimodels.MessageView{}, errors.Wrap(err, "ошибка сохранения сообщения")
	}
	if err = i.store.MarkRead(roomID, senderID, rec.SentAt); err != nil {
		log.WithField("room_id", roomID).WithError(err).Warn("ошибка отметки чата прочитанным")
	}
	i.pushMessage(rec)
	return rec.ToModel(senderID), nil
}

// MessagesSince новые сообщения для опроса клиентом без websocket
func (i impl) MessagesSince(roomID, memberID string, since time.Time) ([]chatapimodels.MessageView, error) {
	if _, err := i.checkAccess(roomID, memberID); err != nil {
		return nil, err
	}
	messages, err := i.store.ListMessages(roomID, &since)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сообщений")
	}
	return toMessageViews(messages, memberID), nil
}

func (i impl) pushMessage(rec dbmodels.ChatMessage) {
	if i.push == nil {
		return
	}
	members, err := i.store.ListMembers(rec.RoomID)
	if err != nil {
		log.WithField("room_id", rec.RoomID).WithError(err).Warn("ошибка получения участников для уведомления")
		return
	}
	senderName := ""
	if rec.Sender != nil {
		senderName = rec.Sender.Name
	}
	for _, member := range members {
		if member.MemberID == rec.SenderID {
			continue
		}
		payload := chatapimodels.PushMessage{
			RoomID:  rec.RoomID,
			Message: rec.ToModel(member.MemberID),
		}
		i.push.SendData(member.MemberID, models.PushChatMessage, payload, senderName, rec.Message)
	}
}

func (i impl) checkAccess(roomID, memberID string) (*dbmodels.ChatRoom, error) {
	room, err := i.store.GetRoom(roomID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения чата")
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	ok, err := i.store.IsMember(roomID, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки участника чата")
	}
	if !ok {
		return nil, ErrNotMember
	}
	return room, nil
}

func (i impl) directPartner(roomID, memberID string) (*dbmodels.Employee, error) {
	members, err := i.store.ListMembers(roomID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения участников чата")
	}
	for _, member := range members {
		if member.MemberID != memberID && member.Member != nil {
			return member.Member, nil
		}
	}
	return nil, nil
}

func (i impl) createRoom(name string, roomType models.ChatRoomType, creatorID string, withCode bool) (*dbmodels.ChatRoom, error) {
	rec := dbmodels.ChatRoom{
		RoomName:  name,
		RoomType:  roomType,
		CreatedBy: creatorID,
		IsActive:  true,
	}
	if err := rec.Validate(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if withCode {
		code, err := i.uniqueJoinCode()
		if err != nil {
			return nil, err
		}
		rec.JoinCode = &code
	}
	id, err := i.store.CreateRoom(rec)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания чата")
	}
	rec.ID = id
	rec.CreatedAt = i.now()
	return &rec, nil
}

func (i impl) uniqueJoinCode() (string, error) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := GenerateJoinCode()
		if err != nil {
			return "", err
		}
		exist, err := i.store.ExistJoinCode(code)
		if err != nil {
			return "", errors.Wrap(err, "ошибка проверки кода приглашения")
		}
		if !exist {
			return code, nil
		}
	}
	return "", errors.New("не удалось сгенерировать уникальный код приглашения")
}

func (i impl) addMember(roomID, memberID string) error {
	now := i.now()
	err := i.store.AddMember(dbmodels.RoomMembership{
		RoomID:     roomID,
		MemberID:   memberID,
		MemberType: models.MemberEmployee,
		JoinedAt:   now,
		LastReadAt: now,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка добавления участника чата")
	}
	return nil
}

func toMessageViews(list []dbmodels.ChatMessage, viewerID string) []chatapimodels.MessageView {
	result := make([]chatapimodels.MessageView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel(viewerID))
	}
	return result
}
