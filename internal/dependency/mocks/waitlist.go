package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/qellagg/qella-waitlist/internal/entity"
)

// Waitlist is a mock type for the dependency.Waitlist interface
type Waitlist struct {
	mock.Mock
}

func (m *Waitlist) Register(ctx context.Context, email, username string) (int, error) {
	ret := m.Called(ctx, email, username)
	return ret.Get(0).(int), ret.Error(1)
}

func (m *Waitlist) EmailExists(ctx context.Context, email string) (bool, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(bool), ret.Error(1)
}

func (m *Waitlist) UsernameExists(ctx context.Context, username string) (bool, error) {
	ret := m.Called(ctx, username)
	return ret.Get(0).(bool), ret.Error(1)
}

func (m *Waitlist) GetEntryByUsername(ctx context.Context, username string) (*entity.WaitlistEntry, error) {
	ret := m.Called(ctx, username)
	var entry *entity.WaitlistEntry
	if ret.Get(0) != nil {
		entry = ret.Get(0).(*entity.WaitlistEntry)
	}
	return entry, ret.Error(1)
}

func (m *Waitlist) Count(ctx context.Context) (int, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int), ret.Error(1)
}
