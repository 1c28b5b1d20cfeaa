package remote

import (
	"context"
	"errors"

	"nexus-dashboard/internal/domain"
)

var (
	ErrOffline     = errors.New("remote store not configured")
	ErrBadStatus   = errors.New("remote store returned an error status")
	ErrBadResponse = errors.New("remote store returned malformed data")
)

// Remote is the shared data endpoint. Fetch returns the whole state; Push replaces one partition.
type Remote interface {
	Fetch(ctx context.Context) (*domain.Snapshot, error)
	Push(ctx context.Context, key string, data []byte) error
	Name() string
}

type offline struct{}

// NewOffline returns a Remote that is never available.
func NewOffline() Remote {
	return offline{}
}

func (offline) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	return nil, ErrOffline
}

func (offline) Push(ctx context.Context, key string, data []byte) error {
	return ErrOffline
}

func (offline) Name() string { return "none" }
