package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/service"
)

// Testify mocks for the service interfaces this package consumes. They live
// here rather than in internal/mocks so the shared mocks package does not
// depend on internal/service.

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Handshake(appID string) (string, error) {
	args := m.Called(appID)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (service.LoginResult, error) {
	args := m.Called(ctx, identifier, password)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

type mockRecoveryService struct {
	mock.Mock
}

func (m *mockRecoveryService) Request(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockRecoveryService) Confirm(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, params service.RegisterParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, username string, params service.UpdateParams) (model.User, error) {
	args := m.Called(ctx, username, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserService) UpdatePhoto(ctx context.Context, username, ext, contentType string, reader io.Reader, size int64) (string, error) {
	args := m.Called(ctx, username, ext, contentType, reader, size)
	return args.String(0), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}
