// Package feed merges client reminders and global notifications into the bell feed.
package feed

import (
	"sort"
	"time"

	"nexus-dashboard/internal/domain"
)

type Source string

const (
	SourceReminder     Source = "reminder"
	SourceNotification Source = "notification"
)

type Kind string

const (
	KindOverdue  Kind = "overdue"
	KindToday    Kind = "today"
	KindUpcoming Kind = "upcoming"
	KindAlert    Kind = "alert"
	KindInfo     Kind = "info"
)

type Entry struct {
	ID     string    `json:"id"`
	Source Source    `json:"source"`
	Kind   Kind      `json:"kind"`
	Date   time.Time `json:"date"`
	Text   string    `json:"text"`

	ProjectID  string `json:"projectId,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	ClientName string `json:"clientName,omitempty"`

	FromUserName string `json:"fromUserName,omitempty"`
}

// Ref addresses the record behind an entry when marking it read.
type Ref struct {
	Source    Source `json:"source"`
	ID        string `json:"id"`
	ProjectID string `json:"projectId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`
}

func (e Entry) Ref() Ref {
	return Ref{Source: e.Source, ID: e.ID, ProjectID: e.ProjectID, ClientID: e.ClientID}
}

// Classify buckets a reminder date relative to now.
func Classify(date, now time.Time) Kind {
	if date.Before(now) {
		return KindOverdue
	}
	date = date.In(now.Location())
	if y, m, d := date.Date(); y == now.Year() && m == now.Month() && d == now.Day() {
		return KindToday
	}
	return KindUpcoming
}

// Build returns the viewer's feed, oldest first. Reminders are shown to admins only;
// notifications to anyone they target.
func Build(projects []domain.Project, notifications []domain.GlobalNotification, viewer *domain.User, now time.Time) []Entry {
	entries := []Entry{}
	if viewer == nil {
		return entries
	}

	if viewer.IsAdmin() {
		for i := range projects {
			p := &projects[i]
			for j := range p.Clients {
				c := &p.Clients[j]
				for _, r := range c.Reminders {
					if r.IsCompleted {
						continue
					}
					entries = append(entries, Entry{
						ID:         r.ID,
						Source:     SourceReminder,
						Kind:       Classify(r.Date, now),
						Date:       r.Date,
						Text:       r.Note,
						ProjectID:  p.ID,
						ClientID:   c.ID,
						ClientName: c.ClientName,
					})
				}
			}
		}
	}

	for _, n := range notifications {
		if n.IsRead || !n.IsFor(viewer.ID) {
			continue
		}
		kind := KindInfo
		if n.Type == domain.NotifAlert {
			kind = KindAlert
		}
		entries = append(entries, Entry{
			ID:           n.ID,
			Source:       SourceNotification,
			Kind:         kind,
			Date:         n.Date,
			Text:         n.Message,
			FromUserName: n.FromUserName,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	return entries
}
