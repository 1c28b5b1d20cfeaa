package workspace

import (
	"context"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/i18n"
)

// Export returns the complete backup document.
func (w *Workspace) Export() domain.Backup {
	snap := w.Snapshot()
	return snap.Backup()
}

// Import replaces every collection present in p. Absent collections are untouched.
func (w *Workspace) Import(ctx context.Context, p *domain.ImportPayload) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var partitions []string
	if p.HasProjects {
		w.replaceProjects(p.Projects)
		partitions = append(partitions, domain.PartitionProjects)
	}
	if p.HasUsers {
		w.users = orEmpty(append([]domain.User(nil), p.Users...))
		partitions = append(partitions, domain.PartitionUsers)
	}
	if p.HasGlobalNotifications {
		w.notifications = orEmpty(append([]domain.GlobalNotification(nil), p.GlobalNotifications...))
		partitions = append(partitions, domain.PartitionNotifications)
	}
	if p.HasChatMessages {
		w.messages = orEmpty(append([]domain.ChatMessage(nil), p.ChatMessages...))
		partitions = append(partitions, domain.PartitionMessages)
	}
	if p.HasGoals {
		w.goals = orEmpty(append([]domain.Goal(nil), p.Goals...))
		partitions = append(partitions, domain.PartitionGoals)
	}
	if len(partitions) == 0 {
		return nil
	}
	return w.commit(ctx, partitions...)
}

func (w *Workspace) Language() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.language
}

// StoredLanguage returns the saved preference, or "" when none has been chosen yet.
func (w *Workspace) StoredLanguage() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.languageSet {
		return ""
	}
	return w.language
}

// SetLanguage stores the preferred locale locally. It is not synced.
func (w *Workspace) SetLanguage(ctx context.Context, tag string) (string, error) {
	locale := i18n.Normalize(tag)
	if locale == "" {
		return "", ErrInvalidLanguage
	}
	if err := w.persist.SaveSetting(ctx, domain.SettingLanguage, locale); err != nil {
		return "", err
	}
	w.mu.Lock()
	w.language = locale
	w.languageSet = true
	w.mu.Unlock()
	return locale, nil
}

// SetSessionUser remembers the signed-in user id locally; an empty id clears it.
func (w *Workspace) SetSessionUser(ctx context.Context, userID string) error {
	return w.persist.SaveSetting(ctx, domain.SettingSessionUser, userID)
}
