// Package workspace owns the in-memory state of the dashboard. Every accepted mutation bumps the
// revision and is handed to the persistence adapter for the partitions it touched.
package workspace

import (
	"context"
	"log"
	"sync"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/pkg/i18n"
	"nexus-dashboard/internal/service/persistence"
)

// clientRecord is a client row keyed by id with its owning project.
type clientRecord struct {
	projectID string
	sale      domain.Sale
}

type projectRecord struct {
	project   domain.Project
	clientIDs []string
}

type Workspace struct {
	mu       sync.RWMutex
	persist  persistence.Service
	clock    clock.Clock
	revision uint64

	users         []domain.User
	projectIDs    []string
	projects      map[string]*projectRecord
	clients       map[string]*clientRecord
	notifications []domain.GlobalNotification
	messages      []domain.ChatMessage
	goals         []domain.Goal
	language      string
	languageSet   bool
}

// SeedAdmin is the account created when the workspace starts without any users.
type SeedAdmin struct {
	Username string
	Password string
	Name     string
}

func New(persist persistence.Service, c clock.Clock) *Workspace {
	return &Workspace{
		persist:  persist,
		clock:    c,
		projects: make(map[string]*projectRecord),
		clients:  make(map[string]*clientRecord),
		language: i18n.DefaultLocale,
	}
}

// Bootstrap loads state from the remote store, falling back to the local store per partition,
// then seeds an admin if there are no users.
func (w *Workspace) Bootstrap(ctx context.Context, seed SeedAdmin) error {
	local, err := w.persist.LoadLocal(ctx)
	if err != nil {
		return err
	}

	snap := local
	if remoteSnap, ok := w.persist.Load(ctx); ok {
		log.Printf("[Workspace] loaded state from remote store")
		snap = merge(remoteSnap, local)
	} else {
		log.Printf("[Workspace] remote store unavailable, using local data")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.replaceProjects(snap.Projects)
	w.users = orEmpty(snap.Users)
	w.notifications = orEmpty(snap.Notifications)
	w.messages = orEmpty(snap.Messages)
	w.goals = orEmpty(snap.Goals)

	if lang, err := w.persist.Setting(ctx, domain.SettingLanguage); err == nil {
		if locale := i18n.Normalize(lang); locale != "" {
			w.language = locale
			w.languageSet = true
		}
	}

	if len(w.users) == 0 && seed.Username != "" {
		admin := domain.User{
			ID:        newID(),
			Username:  seed.Username,
			Password:  seed.Password,
			Name:      seed.Name,
			Role:      domain.RoleAdmin,
			CreatedAt: w.clock.Now(),
		}
		w.users = append(w.users, admin)
		log.Printf("[Workspace] seeded admin user %q", admin.Username)
		return w.commit(ctx, domain.PartitionUsers)
	}

	w.revision++
	return nil
}

func merge(primary, fallback *domain.Snapshot) *domain.Snapshot {
	out := *primary
	if out.Projects == nil {
		out.Projects = fallback.Projects
	}
	if out.Users == nil {
		out.Users = fallback.Users
	}
	if out.Notifications == nil {
		out.Notifications = fallback.Notifications
	}
	if out.Messages == nil {
		out.Messages = fallback.Messages
	}
	if out.Goals == nil {
		out.Goals = fallback.Goals
	}
	return &out
}

// Revision increases with every accepted mutation.
func (w *Workspace) Revision() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.revision
}

// Snapshot returns a deep copy of the full state with clients nested under their projects.
func (w *Workspace) Snapshot() *domain.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return &domain.Snapshot{
		Projects:      w.projectsLocked(),
		Users:         append([]domain.User{}, w.users...),
		Notifications: append([]domain.GlobalNotification{}, w.notifications...),
		Messages:      append([]domain.ChatMessage{}, w.messages...),
		Goals:         append([]domain.Goal{}, w.goals...),
	}
}

// commit bumps the revision and saves the given partitions. The caller holds w.mu.
func (w *Workspace) commit(ctx context.Context, partitions ...string) error {
	w.revision++
	for _, p := range partitions {
		if err := w.persist.Save(ctx, p, w.partitionLocked(p)); err != nil {
			log.Printf("[Workspace] failed to save %s: %v", p, err)
			return err
		}
	}
	return nil
}

func (w *Workspace) partitionLocked(p string) any {
	switch p {
	case domain.PartitionProjects:
		return w.projectsLocked()
	case domain.PartitionUsers:
		return w.users
	case domain.PartitionNotifications:
		return w.notifications
	case domain.PartitionMessages:
		return w.messages
	case domain.PartitionGoals:
		return w.goals
	}
	return nil
}

// projectsLocked materializes the nested project view.
func (w *Workspace) projectsLocked() []domain.Project {
	out := make([]domain.Project, 0, len(w.projectIDs))
	for _, id := range w.projectIDs {
		out = append(out, w.projectViewLocked(w.projects[id]))
	}
	return out
}

func (w *Workspace) projectViewLocked(rec *projectRecord) domain.Project {
	p := rec.project
	p.Clients = make([]domain.Sale, 0, len(rec.clientIDs))
	for _, cid := range rec.clientIDs {
		p.Clients = append(p.Clients, cloneSale(w.clients[cid].sale))
	}
	return p
}

// replaceProjects swaps the whole project collection for projects, normalizing it into the
// keyed store. The caller holds w.mu.
func (w *Workspace) replaceProjects(projects []domain.Project) {
	w.projectIDs = w.projectIDs[:0]
	w.projects = make(map[string]*projectRecord, len(projects))
	w.clients = make(map[string]*clientRecord)

	for _, p := range projects {
		if p.ID == "" {
			p.ID = newID()
		}
		if _, dup := w.projects[p.ID]; dup {
			continue
		}
		rec := &projectRecord{project: p}
		rec.project.Clients = nil
		for _, s := range p.Clients {
			if s.ID == "" {
				s.ID = newID()
			}
			if _, dup := w.clients[s.ID]; dup {
				continue
			}
			normalizeSale(&s)
			w.clients[s.ID] = &clientRecord{projectID: p.ID, sale: cloneSale(s)}
			rec.clientIDs = append(rec.clientIDs, s.ID)
		}
		w.projects[p.ID] = rec
		w.projectIDs = append(w.projectIDs, p.ID)
	}
}

func cloneSale(s domain.Sale) domain.Sale {
	out := s
	out.Items = make([]domain.SaleItem, len(s.Items))
	for i, item := range s.Items {
		item.Attachments = append([]domain.Attachment{}, item.Attachments...)
		if item.Deliverables != nil {
			item.Deliverables = append([]domain.Attachment{}, item.Deliverables...)
		}
		out.Items[i] = item
	}
	out.Reminders = append([]domain.Reminder{}, s.Reminders...)
	out.AssignedWorkerIDs = append([]string{}, s.AssignedWorkerIDs...)
	if s.SentDate != nil {
		d := *s.SentDate
		out.SentDate = &d
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
