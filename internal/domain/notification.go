package domain

import (
	"time"
)

// BroadcastTarget addresses a notification to every user. Broadcasts share a single read flag.
const BroadcastTarget = "all"

type GlobalNotification struct {
	ID           string           `json:"id"`
	TargetUserID string           `json:"targetUserId"`
	FromUserName string           `json:"fromUserName"`
	Message      string           `json:"message"`
	Date         time.Time        `json:"date"`
	IsRead       bool             `json:"isRead"`
	Type         NotificationType `json:"type"`
}

type NotificationType string

const (
	NotifAlert NotificationType = "alert"
	NotifInfo  NotificationType = "info"
)

func (n *GlobalNotification) IsFor(userID string) bool {
	return n.TargetUserID == BroadcastTarget || n.TargetUserID == userID
}

type Reminder struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Note        string    `json:"note"`
	IsCompleted bool      `json:"isCompleted"`
}

type SendNotificationInput struct {
	TargetUserID string           `json:"targetUserId"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
}

type CreateReminderInput struct {
	Date time.Time `json:"date"`
	Note string    `json:"note"`
}
