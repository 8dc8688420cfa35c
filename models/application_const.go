package models

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationInReview ApplicationStatus = "In Review"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

var applicationStatusHumanName = map[ApplicationStatus]string{
	ApplicationPending:  "Новая",
	ApplicationInReview: "На рассмотрении",
	ApplicationAccepted: "Принята",
	ApplicationRejected: "Отклонена",
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := applicationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatusHumanName[s]
	return ok
}

// SortOrder порядок вывода в списке: новые, на рассмотрении, остальные
func (s ApplicationStatus) SortOrder() int {
	switch s {
	case ApplicationPending:
		return 1
	case ApplicationInReview:
		return 2
	default:
		return 3
	}
}
