package chatapimodels

import (
	"hr-payroll-backend/lib/utils/validation"
	"hr-payroll-backend/models"
	employeeapimodels "hr-payroll-backend/models/api/employee"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const MaxMessageLength = 2000

type CreateRoomRequest struct {
	Name string              `json:"name" validate:"required,max=100"`
	Type models.ChatRoomType `json:"type"` // group по умолчанию
}

func (r CreateRoomRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Type != "" && r.Type != models.ChatRoomGroup && r.Type != models.ChatRoomApplicant {
		return errors.New("можно создать только групповой чат или чат с кандидатом")
	}
	return nil
}

type JoinRoomRequest struct {
	JoinCode string `json:"join_code" validate:"required,len=8"`
}

func (r JoinRoomRequest) Validate() error {
	return validation.Struct(r)
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

func (r SendMessageRequest) Validate() error {
	text := strings.TrimSpace(r.Message)
	if text == "" {
		return errors.New("сообщение не может быть пустым")
	}
	if len(text) > MaxMessageLength {
		return errors.Errorf("сообщение не должно превышать %d символов", MaxMessageLength)
	}
	return nil
}

type RoomView struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	DisplayName        string              `json:"display_name"` // для личного чата - имя собеседника
	Type               models.ChatRoomType `json:"type"`
	JoinCode           string              `json:"join_code,omitempty"`
	MemberCount        int64               `json:"member_count"`
	UnreadCount        int64               `json:"unread_count"`
	ParticipantPicture string              `json:"participant_picture,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

type RoomsOverview struct {
	MyRooms     []RoomView                `json:"my_rooms"`
	PublicRooms []RoomView                `json:"public_rooms"`
	Employees   []employeeapimodels.Brief `json:"employees"` // для личных сообщений
}

type MessageView struct {
	ID             string    `json:"id"`
	SenderName     string    `json:"sender_name"`
	EmployeeID     string    `json:"employee_id"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
	IsOwn          bool      `json:"is_own"`
}

type MemberView struct {
	Name           string          `json:"name"`
	EmployeeID     string          `json:"employee_id"`
	Role           models.UserRole `json:"role"`
	ProfilePicture string          `json:"profile_picture,omitempty"`
}

type RoomDetails struct {
	Room     RoomView      `json:"room"`
	Messages []MessageView `json:"messages"`
	Members  []MemberView  `json:"members"`
}

// PushMessage событие ws о новом сообщении
type PushMessage struct {
	RoomID  string      `json:"room_id"`
	Message MessageView `json:"message"`
}
