package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/qellagg/qella-waitlist/internal/dependency"
)

// Mailer is a mock type for the dependency.Mailer interface
type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendWaitlistConfirmation(ctx context.Context, rep dependency.Repository, to, username, waitlistNumber string) error {
	ret := m.Called(ctx, rep, to, username, waitlistNumber)
	return ret.Error(0)
}

func (m *Mailer) Start(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

func (m *Mailer) Stop() error {
	ret := m.Called()
	return ret.Error(0)
}
