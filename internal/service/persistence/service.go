package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/pkg/debounce"
	"nexus-dashboard/internal/remote"
	"nexus-dashboard/internal/repository"
)

const (
	DefaultSyncDelay = 2 * time.Second
	pushTimeout      = 15 * time.Second
)

// Partitions lists every collection that is mirrored to the remote store, in load order.
var Partitions = []string{
	domain.PartitionProjects,
	domain.PartitionUsers,
	domain.PartitionNotifications,
	domain.PartitionMessages,
	domain.PartitionGoals,
}

// Service is the local-first persistence adapter. Local writes are synchronous; remote writes
// are debounced per partition and never report failure to the caller.
type Service interface {
	Load(ctx context.Context) (*domain.Snapshot, bool)
	LoadLocal(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, partition string, data any) error
	SaveSetting(ctx context.Context, key, value string) error
	Setting(ctx context.Context, key string) (string, error)
	Flush()
}

type service struct {
	local     repository.StateRepository
	remote    remote.Remote
	debouncer *debounce.Debouncer
}

func NewService(local repository.StateRepository, rem remote.Remote, c clock.Clock, delay time.Duration) Service {
	if rem == nil {
		rem = remote.NewOffline()
	}
	if delay <= 0 {
		delay = DefaultSyncDelay
	}
	d := debounce.New(c, delay)
	d.OnSupersede = func(key string) {
		supersededSyncs.WithLabelValues(key).Inc()
	}
	return &service{
		local:     local,
		remote:    rem,
		debouncer: d,
	}
}

// Load fetches the full state from the remote store and mirrors it locally. The boolean is false
// when the remote is unreachable or answered with something unusable.
func (s *service) Load(ctx context.Context) (*domain.Snapshot, bool) {
	snap, err := s.remote.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, remote.ErrOffline) {
			log.Printf("[Persistence] remote %s unavailable: %v", s.remote.Name(), err)
		}
		remoteLoads.WithLabelValues(resultError).Inc()
		return nil, false
	}
	remoteLoads.WithLabelValues(resultOK).Inc()

	for _, p := range Partitions {
		v := partitionValue(snap, p)
		if v == nil {
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			log.Printf("[Persistence] failed to encode %s: %v", p, err)
			continue
		}
		if err := s.local.Put(ctx, p, data); err != nil {
			log.Printf("[Persistence] failed to mirror %s locally: %v", p, err)
		}
	}
	return snap, true
}

// LoadLocal reads every partition from the local store. Missing partitions stay nil; a partition
// that no longer decodes is logged and skipped.
func (s *service) LoadLocal(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	for _, p := range Partitions {
		data, err := s.local.Get(ctx, p)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if err := json.Unmarshal(data, partitionTarget(snap, p)); err != nil {
			log.Printf("[Persistence] discarding unreadable local %s: %v", p, err)
		}
	}
	return snap, nil
}

func (s *service) Save(ctx context.Context, partition string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", partition, err)
	}

	if err := s.local.Put(ctx, partition, payload); err != nil {
		localSaves.WithLabelValues(partition, resultError).Inc()
		return fmt.Errorf("save %s: %w", partition, err)
	}
	localSaves.WithLabelValues(partition, resultOK).Inc()

	s.debouncer.Trigger(partition, func() {
		s.push(partition, payload)
	})
	return nil
}

func (s *service) push(partition string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	err := s.remote.Push(ctx, partition, payload)
	switch {
	case err == nil:
		remoteSyncs.WithLabelValues(partition, resultOK).Inc()
	case errors.Is(err, remote.ErrOffline):
		remoteSyncs.WithLabelValues(partition, resultSkipped).Inc()
	default:
		remoteSyncs.WithLabelValues(partition, resultError).Inc()
		log.Printf("[Persistence] sync %s to %s failed: %v", partition, s.remote.Name(), err)
	}
}

func (s *service) SaveSetting(ctx context.Context, key, value string) error {
	if err := s.local.Put(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

// Setting returns "" for a key that was never saved.
func (s *service) Setting(ctx context.Context, key string) (string, error) {
	data, err := s.local.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Flush issues every pending remote sync immediately.
func (s *service) Flush() {
	s.debouncer.Flush()
}

func partitionValue(snap *domain.Snapshot, partition string) any {
	switch partition {
	case domain.PartitionProjects:
		if snap.Projects != nil {
			return snap.Projects
		}
	case domain.PartitionUsers:
		if snap.Users != nil {
			return snap.Users
		}
	case domain.PartitionNotifications:
		if snap.Notifications != nil {
			return snap.Notifications
		}
	case domain.PartitionMessages:
		if snap.Messages != nil {
			return snap.Messages
		}
	case domain.PartitionGoals:
		if snap.Goals != nil {
			return snap.Goals
		}
	}
	return nil
}

func partitionTarget(snap *domain.Snapshot, partition string) any {
	switch partition {
	case domain.PartitionProjects:
		return &snap.Projects
	case domain.PartitionUsers:
		return &snap.Users
	case domain.PartitionNotifications:
		return &snap.Notifications
	case domain.PartitionMessages:
		return &snap.Messages
	case domain.PartitionGoals:
		return &snap.Goals
	}
	return nil
}
