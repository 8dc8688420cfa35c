package models

type ChatRoomType string

const (
	ChatRoomGeneral   ChatRoomType = "general"
	ChatRoomGroup     ChatRoomType = "group"
	ChatRoomDirect    ChatRoomType = "direct"
	ChatRoomApplicant ChatRoomType = "applicant"
)

func (t ChatRoomType) IsValid() bool {
	switch t {
	case ChatRoomGeneral, ChatRoomGroup, ChatRoomDirect, ChatRoomApplicant:
		return true
	}
	return false
}

type MemberType string

const (
	MemberEmployee  MemberType = "employee"
	MemberApplicant MemberType = "applicant"
)

const GeneralRoomName = "General Discussion"
