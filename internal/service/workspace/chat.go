package workspace

import (
	"context"
	"sort"
	"strings"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
)

func (w *Workspace) SendMessage(ctx context.Context, ac appctx.Context, input domain.SendMessageInput) (*domain.ChatMessage, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if ac.User == nil || input.ReceiverID == ac.User.ID {
		return nil, ErrInvalidRecipient
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.userIndexLocked(input.ReceiverID) < 0 {
		return nil, ErrInvalidRecipient
	}

	m := domain.ChatMessage{
		ID:         newID(),
		SenderID:   ac.User.ID,
		ReceiverID: input.ReceiverID,
		Text:       text,
		Timestamp:  ac.Now(),
	}
	w.messages = append(w.messages, m)

	if err := w.commit(ctx, domain.PartitionMessages); err != nil {
		return nil, err
	}
	return &m, nil
}

// Conversation returns the messages exchanged between a and b, oldest first.
func (w *Workspace) Conversation(a, b string) []domain.ChatMessage {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := []domain.ChatMessage{}
	for i := range w.messages {
		if w.messages[i].Between(a, b) {
			out = append(out, w.messages[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// MarkConversationRead marks every message from other to viewer read and returns how many changed.
func (w *Workspace) MarkConversationRead(ctx context.Context, viewer, other string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := 0
	for i := range w.messages {
		m := &w.messages[i]
		if m.SenderID == other && m.ReceiverID == viewer && !m.Read {
			m.Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, w.commit(ctx, domain.PartitionMessages)
}

// UnreadCounts returns, per sender, how many messages to viewer are unread.
func (w *Workspace) UnreadCounts(viewer string) map[string]int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	counts := make(map[string]int)
	for _, m := range w.messages {
		if m.ReceiverID == viewer && !m.Read {
			counts[m.SenderID]++
		}
	}
	return counts
}
