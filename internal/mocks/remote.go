package mocks

import (
	"context"

	"nexus-dashboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Remote struct {
	mock.Mock
}

func (m *Remote) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *Remote) Push(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *Remote) Name() string {
	return "mock"
}
