package mocks

import (
	"context"

	"nexus-dashboard/internal/repository"

	"github.com/stretchr/testify/mock"
)

type StateRepository struct {
	mock.Mock
}

func (m *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *StateRepository) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *StateRepository) List(ctx context.Context) ([]repository.StateEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StateEntry), args.Error(1)
}

func (m *StateRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
