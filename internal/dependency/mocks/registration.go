package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Registration is a mock type for the dependency.Registration interface
type Registration struct {
	mock.Mock
}

func (m *Registration) Register(ctx context.Context, email, username string) (string, error) {
	ret := m.Called(ctx, email, username)
	return ret.Get(0).(string), ret.Error(1)
}

func (m *Registration) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(bool), ret.Error(1)
}

func (m *Registration) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	ret := m.Called(ctx, username)
	return ret.Get(0).(bool), ret.Error(1)
}
