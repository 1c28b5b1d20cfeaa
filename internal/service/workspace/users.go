package workspace

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
)

func newID() string {
	return uuid.NewString()
}

func (w *Workspace) Users() []domain.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.User{}, w.users...)
}

func (w *Workspace) User(id string) (*domain.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := w.userIndexLocked(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	u := w.users[i]
	return &u, nil
}

func (w *Workspace) Workers() []domain.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []domain.User
	for _, u := range w.users {
		if u.Role == domain.RoleWorker {
			out = append(out, u)
		}
	}
	return out
}

func (w *Workspace) CreateUser(ctx context.Context, ac appctx.Context, input domain.CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, u := range w.users {
		if strings.EqualFold(u.Username, username) {
			return nil, ErrDuplicateUsername
		}
	}

	user := domain.User{
		ID:        newID(),
		Username:  username,
		Password:  input.Password,
		Name:      strings.TrimSpace(input.Name),
		Role:      input.Role,
		CreatedAt: ac.Now(),
	}
	if user.Role == domain.RoleWorker {
		user.WorkerStatus = domain.WorkerAvailable
	}
	w.users = append(w.users, user)

	if err := w.commit(ctx, domain.PartitionUsers); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user and drops them from every client assignment. Unknown ids are a no-op.
func (w *Workspace) DeleteUser(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.userIndexLocked(id)
	if i < 0 {
		return nil
	}
	w.users = append(w.users[:i], w.users[i+1:]...)

	partitions := []string{domain.PartitionUsers}
	touched := false
	for _, rec := range w.clients {
		ids := rec.sale.AssignedWorkerIDs
		kept := ids[:0]
		for _, wid := range ids {
			if wid != id {
				kept = append(kept, wid)
			}
		}
		if len(kept) != len(ids) {
			rec.sale.AssignedWorkerIDs = kept
			touched = true
		}
	}
	if touched {
		partitions = append(partitions, domain.PartitionProjects)
	}
	return w.commit(ctx, partitions...)
}

func (w *Workspace) SetWorkerStatus(ctx context.Context, id string, status domain.WorkerStatus) (*domain.User, error) {
	if !status.IsValid() {
		return nil, ErrInvalidWorkerStatus
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.userIndexLocked(id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	w.users[i].WorkerStatus = status
	u := w.users[i]

	if err := w.commit(ctx, domain.PartitionUsers); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate compares credentials exactly as stored.
func (w *Workspace) Authenticate(username, password string) (*domain.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, u := range w.users {
		if u.Username == username && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (w *Workspace) userIndexLocked(id string) int {
	for i := range w.users {
		if w.users[i].ID == id {
			return i
		}
	}
	return -1
}
