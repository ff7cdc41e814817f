package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mailer is a testify mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendRecoveryCode(ctx context.Context, to, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}
