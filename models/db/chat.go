package dbmodels

import (
	"hr-payroll-backend/models"
	chatapimodels "hr-payroll-backend/models/api/chat"
	"time"

	"github.com/pkg/errors"
)

type ChatRoom struct {
	BaseModel
	RoomName  string              `gorm:"type:varchar(100)"`
	RoomType  models.ChatRoomType `gorm:"type:varchar(20);index"`
	JoinCode  *string             `gorm:"type:varchar(8);uniqueIndex"` // у личных чатов кода нет
	CreatedBy string              `gorm:"type:varchar(36)"`
	IsActive  bool
}

func (r ChatRoom) Validate() error {
	if r.RoomName == "" {
		return errors.New("не указано название чата")
	}
	if !r.RoomType.IsValid() {
		return errors.New("указан неизвестный тип чата")
	}
	return nil
}

func (r ChatRoom) ToModel() chatapimodels.RoomView {
	result := chatapimodels.RoomView{
		ID:          r.ID,
		Name:        r.RoomName,
		DisplayName: r.RoomName,
		Type:        r.RoomType,
		CreatedAt:   r.CreatedAt,
	}
	if r.JoinCode != nil {
		result.JoinCode = *r.JoinCode
	}
	return result
}

type ChatMessage struct {
	BaseModel
	RoomID     string            `gorm:"type:varchar(36);index"`
	SenderID   string            `gorm:"type:varchar(36)"`
	Sender     *Employee         `gorm:"foreignKey:SenderID"`
	SenderType models.MemberType `gorm:"type:varchar(20)"`
	Message    string
	SentAt     time.Time `gorm:"index"`
}

func (r ChatMessage) ToModel(viewerID string) chatapimodels.MessageView {
	result := chatapimodels.MessageView{
		ID:      r.ID,
		Message: r.Message,
		SentAt:  r.SentAt,
		IsOwn:   r.SenderID == viewerID,
	}
	if r.Sender != nil {
		result.SenderName = r.Sender.Name
		result.EmployeeID = r.Sender.EmployeeID
		result.ProfilePicture = r.Sender.ProfilePicture
	}
	return result
}

type RoomMembership struct {
	BaseModel
	RoomID     string            `gorm:"type:varchar(36);index:idx_room_member,unique"`
	MemberID   string            `gorm:"type:varchar(36);index:idx_room_member,unique"`
	Member     *Employee         `gorm:"foreignKey:MemberID"`
	MemberType models.MemberType `gorm:"type:varchar(20);index:idx_room_member,unique"`
	JoinedAt   time.Time
	LastReadAt time.Time
}

// RoomWithStats строка списка чатов пользователя
type RoomWithStats struct {
	ChatRoom
	MemberCount        int64
	UnreadCount        int64
	DisplayName        string
	ParticipantPicture string
}

func (r RoomWithStats) ToModel() chatapimodels.RoomView {
	result := r.ChatRoom.ToModel()
	result.MemberCount = r.MemberCount
	result.UnreadCount = r.UnreadCount
	if r.DisplayName != "" {
		result.DisplayName = r.DisplayName
	}
	result.ParticipantPicture = r.ParticipantPicture
	return result
}
