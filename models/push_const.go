package models

import "fmt"

type PushCode string

type PushTpl struct {
	Title string
	Msg   string
}

var PushCodeMap = map[PushCode]PushTpl{
	PushChatMessage:      {Title: "Новое сообщение", Msg: "%v: %v"},
	PushLeaveDecided:     {Title: "Заявка на отпуск рассмотрена", Msg: "Заявка на отпуск с %v по %v: %v."},
	PushPayrollGenerated: {Title: "Начислена зарплата", Msg: "Сформирована ведомость за период %v."},
	PushApplicationNew:   {Title: "Новый отклик", Msg: "Получен отклик %v от кандидата %v на позицию «%v»."},
	PushBackupFailed:     {Title: "Ошибка резервного копирования", Msg: "Не удалось создать резервную копию: %v"},
}

const (
	PushChatMessage      PushCode = "PushChatMessage"
	PushLeaveDecided     PushCode = "PushLeaveDecided"
	PushPayrollGenerated PushCode = "PushPayrollGenerated"
	PushApplicationNew   PushCode = "PushApplicationNew"
	PushBackupFailed     PushCode = "PushBackupFailed"
)

type NotificationData struct {
	Code  PushCode
	Title string
	Msg   string
}

func GetPushData(code PushCode, args ...any) NotificationData {
	tpl, ok := PushCodeMap[code]
	if !ok {
		return NotificationData{Code: code}
	}
	return NotificationData{
		Code:  code,
		Title: tpl.Title,
		Msg:   fmt.Sprintf(tpl.Msg, args...),
	}
}
