package mocks

import (
	"github.com/stretchr/testify/mock"
)

// TokenManager is a testify mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) IssueAppSessionToken() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *TokenManager) IssueAccessToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) VerifyAppSessionToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *TokenManager) VerifyAccessToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
