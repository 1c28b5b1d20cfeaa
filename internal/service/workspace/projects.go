package workspace

import (
	"context"
	"strings"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
)

func (w *Workspace) Projects() []domain.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.projectsLocked()
}

func (w *Workspace) Project(id string) (*domain.Project, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	rec, ok := w.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	p := w.projectViewLocked(rec)
	return &p, nil
}

func validateProject(input domain.CreateProjectInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrEmptyProjectName
	}
	if input.Cost < 0 {
		return "", ErrNegativeCost
	}
	return name, nil
}

func (w *Workspace) CreateProject(ctx context.Context, ac appctx.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	name, err := validateProject(input)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rec := &projectRecord{project: domain.Project{
		ID:        newID(),
		Name:      name,
		CreatedAt: ac.Now(),
		Cost:      input.Cost,
	}}
	w.projects[rec.project.ID] = rec
	w.projectIDs = append(w.projectIDs, rec.project.ID)

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	p := w.projectViewLocked(rec)
	return &p, nil
}

// UpdateProject replaces the project's own fields. Clients, id and creation time are kept.
func (w *Workspace) UpdateProject(ctx context.Context, id string, input domain.CreateProjectInput) (*domain.Project, error) {
	name, err := validateProject(input)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	rec.project.Name = name
	rec.project.Cost = input.Cost

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	p := w.projectViewLocked(rec)
	return &p, nil
}

// DeleteProject removes the project and all of its clients. Unknown ids are a no-op.
func (w *Workspace) DeleteProject(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.projects[id]
	if !ok {
		return nil
	}
	for _, cid := range rec.clientIDs {
		delete(w.clients, cid)
	}
	delete(w.projects, id)
	for i, pid := range w.projectIDs {
		if pid == id {
			w.projectIDs = append(w.projectIDs[:i], w.projectIDs[i+1:]...)
			break
		}
	}

	return w.commit(ctx, domain.PartitionProjects)
}
