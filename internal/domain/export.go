package domain

// Partition names double as local store keys and remote sync keys.
const (
	PartitionProjects      = "projects"
	PartitionUsers         = "users"
	PartitionNotifications = "notifications"
	PartitionMessages      = "messages"
	PartitionGoals         = "goals"

	SettingSessionUser = "current-session-user"
	SettingLanguage    = "language"
)

// Snapshot is the full state as exchanged with the remote data endpoint.
type Snapshot struct {
	Projects      []Project            `json:"projects"`
	Users         []User               `json:"users"`
	Notifications []GlobalNotification `json:"notifications"`
	Messages      []ChatMessage        `json:"messages"`
	Goals         []Goal               `json:"goals"`
}

// Backup is the export file document.
type Backup struct {
	Projects            []Project            `json:"projects"`
	Users               []User               `json:"users"`
	GlobalNotifications []GlobalNotification `json:"globalNotifications"`
	ChatMessages        []ChatMessage        `json:"chatMessages"`
	Goals               []Goal               `json:"goals"`
}

// ImportPayload holds the collections read from an import file. Has* flags record which keys were
// present; absent collections are left untouched when the payload is applied.
type ImportPayload struct {
	Projects            []Project
	Users               []User
	GlobalNotifications []GlobalNotification
	ChatMessages        []ChatMessage
	Goals               []Goal

	HasProjects            bool
	HasUsers               bool
	HasGlobalNotifications bool
	HasChatMessages        bool
	HasGoals               bool
	Legacy                 bool
}

func (s *Snapshot) Backup() Backup {
	return Backup{
		Projects:            s.Projects,
		Users:               s.Users,
		GlobalNotifications: s.Notifications,
		ChatMessages:        s.Messages,
		Goals:               s.Goals,
	}
}
