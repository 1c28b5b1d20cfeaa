package mocks

import (
	"context"

	"nexus-dashboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Persistence struct {
	mock.Mock
}

func (m *Persistence) Load(ctx context.Context) (*domain.Snapshot, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Bool(1)
}

func (m *Persistence) LoadLocal(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *Persistence) Save(ctx context.Context, partition string, data any) error {
	args := m.Called(ctx, partition, data)
	return args.Error(0)
}

func (m *Persistence) SaveSetting(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Persistence) Setting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *Persistence) Flush() {
	m.Called()
}
