// Package reconcile keeps a client's overall status in step with its items and records every
// item status change as a reminder on the client.
package reconcile

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
	"nexus-dashboard/internal/pkg/i18n"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidStatus = errors.New("invalid item status")
)

// OverallStatus derives the client status from its items. It only ever moves a client forward:
// every item delivered makes it Delivered, any started or delivered item lifts a Lead to
// InProgress, and anything else leaves current as is.
func OverallStatus(current domain.SaleStatus, items []domain.SaleItem) domain.SaleStatus {
	if len(items) == 0 {
		return current
	}

	allDelivered := true
	anyStarted := false
	for i := range items {
		switch items[i].Status {
		case domain.ItemDelivered:
			anyStarted = true
		case domain.ItemInProgress:
			anyStarted = true
			allDelivered = false
		default:
			allDelivered = false
		}
	}

	if allDelivered {
		return domain.StatusDelivered
	}
	if anyStarted && current == domain.StatusLead {
		return domain.StatusInProgress
	}
	return current
}

type ItemStatusChange struct {
	Index         int
	Status        domain.ItemStatus
	RejectionNote string
}

// ApplyItemStatus updates one item of s, reconciles the overall status and appends the audit
// reminder. It returns the appended reminder.
func ApplyItemStatus(ac appctx.Context, s *domain.Sale, change ItemStatusChange) (*domain.Reminder, error) {
	if change.Index < 0 || change.Index >= len(s.Items) {
		return nil, ErrItemNotFound
	}
	if !change.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	item := &s.Items[change.Index]
	item.Status = change.Status
	if change.Status == domain.ItemNeedsRevision {
		item.RejectionNote = change.RejectionNote
	}

	s.Status = OverallStatus(s.Status, s.Items)

	reminder := domain.Reminder{
		ID:          uuid.NewString(),
		Date:        ac.Now(),
		Note:        AuditNote(ac.Locale, ac.ActorName(), item.Name, change.Status),
		IsCompleted: false,
	}
	s.Reminders = append(s.Reminders, reminder)

	return &s.Reminders[len(s.Reminders)-1], nil
}

// AuditNote renders the localized reminder text for an item status change.
func AuditNote(locale, actor, itemName string, status domain.ItemStatus) string {
	if strings.TrimSpace(itemName) == "" {
		itemName = i18n.Translate(locale, "DEFAULT_TASK_NAME")
	}
	return i18n.Format(locale, "REMINDER_ITEM_STATUS", map[string]string{
		"actor":  actor,
		"item":   itemName,
		"status": i18n.Translate(locale, "ITEM_STATUS_"+string(status)),
	})
}
