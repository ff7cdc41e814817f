package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Storage is a testify mock of model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *Storage) Remove(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
