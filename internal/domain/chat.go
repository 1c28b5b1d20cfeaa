package domain

import (
	"time"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// Between reports whether the message belongs to the conversation of the unordered pair {a, b}.
func (m *ChatMessage) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

type SendMessageInput struct {
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}
