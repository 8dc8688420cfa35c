package chatstore

import (
	"hr-payroll-backend/models"
	dbmodels "hr-payroll-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreateRoom(rec dbmodels.ChatRoom) (string, error)
	GetRoom(id string) (*dbmodels.ChatRoom, error)
	GetActiveRoomByCode(joinCode string) (*dbmodels.ChatRoom, error)
	GetGeneralRoom() (*dbmodels.ChatRoom, error)
	ExistJoinCode(joinCode string) (bool, error)
	AddMember(rec dbmodels.RoomMembership) error
	IsMember(roomID, memberID string) (bool, error)
	MarkRead(roomID, memberID string, at time.Time) error
	FindDirectRoom(memberID, otherID string) (string, error)
	ListMemberRooms(memberID string) ([]dbmodels.RoomWithStats, error)
	ListPublicRooms() ([]dbmodels.RoomWithStats, error)
	ListMembers(roomID string) ([]dbmodels.RoomMembership, error)
	CreateMessage(rec dbmodels.ChatMessage) (string, error)
	ListMessages(roomID string, since *time.Time) ([]dbmodels.ChatMessage, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateRoom(rec dbmodels.ChatRoom) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetRoom(id string) (*dbmodels.ChatRoom, error) {
	return i.firstRoom(i.db.Where("id = ?", id))
}

func (i impl) GetActiveRoomByCode(joinCode string) (*dbmodels.ChatRoom, error) {
	return i.firstRoom(i.db.Where("join_code = ? AND is_active = ?", joinCode, true))
}

func (i impl) GetGeneralRoom() (*dbmodels.ChatRoom, error) {
	return i.firstRoom(i.db.Where("room_type = ?", models.ChatRoomGeneral).Order("created_at"))
}

func (i impl) ExistJoinCode(joinCode string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.ChatRoom{}).
		Where("join_code = ?", joinCode).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember повторное добавление участника игнорируется
func (i impl) AddMember(rec dbmodels.RoomMembership) error {
	return i.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).
		Error
}

func (i impl) IsMember(roomID, memberID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.RoomMembership{}).
		Where("room_id = ? AND member_id = ? AND member_type = ?", roomID, memberID, models.MemberEmployee).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) MarkRead(roomID, memberID string, at time.Time) error {
	return i.db.
		Model(&dbmodels.RoomMembership{}).
		Where("room_id = ? AND member_id = ? AND member_type = ?", roomID, memberID, models.MemberEmployee).
		Update("last_read_at", at).
		Error
}

// FindDirectRoom личный чат ровно из двух участников
func (i impl) FindDirectRoom(memberID, otherID string) (string, error) {
	var ids []string
	err := i.db.
		Table("chat_rooms AS cr").
		Joins("JOIN room_memberships rm1 ON rm1.room_id = cr.id").
		Joins("JOIN room_memberships rm2 ON rm2.room_id = cr.id").
		Where("cr.room_type = ?", models.ChatRoomDirect).
		Where("rm1.member_id = ? AND rm2.member_id = ?", memberID, otherID).
		Where("(SELECT COUNT(*) FROM room_memberships rm WHERE rm.room_id = cr.id) = 2").
		Limit(1).
		Pluck("cr.id", &ids).
		Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// ListMemberRooms чаты участника с количеством участников и непрочитанных сообщений
func (i impl) ListMemberRooms(memberID string) (list []dbmodels.RoomWithStats, err error) {
	err = i.db.
		Table("chat_rooms AS cr").
		Select(`cr.*,
			(SELECT COUNT(*) FROM room_memberships m WHERE m.room_id = cr.id) AS member_count,
			(SELECT COUNT(*) FROM chat_messages cm WHERE cm.room_id = cr.id AND cm.sent_at > rm.last_read_at AND cm.sender_id <> ?) AS unread_count`, memberID).
		Joins("JOIN room_memberships rm ON rm.room_id = cr.id").
		Where("rm.member_id = ? AND rm.member_type = ?", memberID, models.MemberEmployee).
		Where("cr.is_active = ?", true).
		Order("cr.created_at desc").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPublicRooms() (list []dbmodels.RoomWithStats, err error) {
	err = i.db.
		Table("chat_rooms AS cr").
		Select(`cr.*, (SELECT COUNT(*) FROM room_memberships m WHERE m.room_id = cr.id) AS member_count`).
		Where("cr.room_type = ? AND cr.is_active = ?", models.ChatRoomGeneral, true).
		Order("cr.created_at").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListMembers(roomID string) (list []dbmodels.RoomMembership, err error) {
	err = i.db.
		Preload("Member").
		Where("room_id = ? AND member_type = ?", roomID, models.MemberEmployee).
		Order("joined_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateMessage(rec dbmodels.ChatMessage) (string, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListMessages(roomID string, since *time.Time) (list []dbmodels.ChatMessage, err error) {
	tx := i.db.
		Preload("Sender").
		Where("room_id = ?", roomID)
	if since != nil {
		tx = tx.Where("sent_at > ?", *since)
	}
	err = tx.
		Order("sent_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) firstRoom(tx *gorm.DB) (*dbmodels.ChatRoom, error) {
	rec := dbmodels.ChatRoom{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
