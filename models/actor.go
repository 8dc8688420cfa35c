package models

// Actor инициатор операции, попадает в журнал аудита
type Actor struct {
	UserID    string
	Name      string
	Role      UserRole
	IP        string
	UserAgent string
}

// SystemActor инициатор для фоновых задач
func SystemActor() Actor {
	return Actor{
		Name: SystemUser,
		IP:   SystemSource,
	}
}
