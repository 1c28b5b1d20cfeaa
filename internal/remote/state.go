package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/repository"
)

type stateRemote struct {
	repo repository.StateRepository
}

// NewState uses a shared state table (one JSON document per partition) as the remote store.
func NewState(repo repository.StateRepository) Remote {
	return &stateRemote{repo: repo}
}

func (r *stateRemote) Name() string { return "postgres" }

func (r *stateRemote) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	entries, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{}
	for _, e := range entries {
		var target any
		switch e.Key {
		case domain.PartitionProjects:
			target = &snap.Projects
		case domain.PartitionUsers:
			target = &snap.Users
		case domain.PartitionNotifications:
			target = &snap.Notifications
		case domain.PartitionMessages:
			target = &snap.Messages
		case domain.PartitionGoals:
			target = &snap.Goals
		default:
			continue
		}
		if err := json.Unmarshal([]byte(e.Data), target); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadResponse, e.Key, err)
		}
	}
	return snap, nil
}

func (r *stateRemote) Push(ctx context.Context, key string, data []byte) error {
	return r.repo.Put(ctx, key, data)
}
