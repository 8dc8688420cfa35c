package models

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

var leaveStatusHumanName = map[LeaveStatus]string{
	LeavePending:  "На рассмотрении",
	LeaveApproved: "Одобрено",
	LeaveRejected: "Отклонено",
}

func (s LeaveStatus) ToHuman() string {
	if human, exist := leaveStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsDecision - статус, который можно выставить при рассмотрении заявки
func (s LeaveStatus) IsDecision() bool {
	return s == LeaveApproved || s == LeaveRejected
}

type LeaveDuration string

const (
	LeaveFullDay LeaveDuration = "Full"
	LeaveHalfDay LeaveDuration = "Half"
)

func (d LeaveDuration) IsValid() bool {
	return d == LeaveFullDay || d == LeaveHalfDay
}
