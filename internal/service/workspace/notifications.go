package workspace

import (
	"context"
	"strings"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
	"nexus-dashboard/internal/service/feed"
)

func (w *Workspace) Notifications() []domain.GlobalNotification {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.GlobalNotification{}, w.notifications...)
}

// SendNotification addresses a message to one user or, with domain.BroadcastTarget, to everyone.
func (w *Workspace) SendNotification(ctx context.Context, ac appctx.Context, input domain.SendNotificationInput) (*domain.GlobalNotification, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if input.Type == "" {
		input.Type = domain.NotifInfo
	}
	if input.Type != domain.NotifInfo && input.Type != domain.NotifAlert {
		input.Type = domain.NotifInfo
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if input.TargetUserID != domain.BroadcastTarget && w.userIndexLocked(input.TargetUserID) < 0 {
		return nil, ErrInvalidRecipient
	}

	n := domain.GlobalNotification{
		ID:           newID(),
		TargetUserID: input.TargetUserID,
		FromUserName: ac.ActorName(),
		Message:      msg,
		Date:         ac.Now(),
		Type:         input.Type,
	}
	w.notifications = append(w.notifications, n)

	if err := w.commit(ctx, domain.PartitionNotifications); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkNotificationRead sets the shared read flag. Unknown ids are a no-op. Non-admins may only
// mark notifications addressed to them or to everyone.
func (w *Workspace) MarkNotificationRead(ctx context.Context, ac appctx.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.notifications {
		n := &w.notifications[i]
		if n.ID != id {
			continue
		}
		if !ac.IsAdmin() && (ac.User == nil || !n.IsFor(ac.User.ID)) {
			return ErrNotRecipient
		}
		if n.IsRead {
			return nil
		}
		n.IsRead = true
		return w.commit(ctx, domain.PartitionNotifications)
	}
	return nil
}

// Feed returns the viewer's merged bell feed.
func (w *Workspace) Feed(ac appctx.Context) []feed.Entry {
	w.mu.RLock()
	projects := w.projectsLocked()
	notifications := append([]domain.GlobalNotification{}, w.notifications...)
	w.mu.RUnlock()

	return feed.Build(projects, notifications, ac.User, ac.Now())
}

// MarkFeedRead completes the reminder or reads the notification behind ref.
func (w *Workspace) MarkFeedRead(ctx context.Context, ac appctx.Context, ref feed.Ref) error {
	switch ref.Source {
	case feed.SourceReminder:
		if !ac.IsAdmin() {
			return ErrNotRecipient
		}
		return w.CompleteReminder(ctx, ref.ProjectID, ref.ClientID, ref.ID)
	case feed.SourceNotification:
		return w.MarkNotificationRead(ctx, ac, ref.ID)
	}
	return nil
}
