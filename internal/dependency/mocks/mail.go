package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/qellagg/qella-waitlist/internal/entity"
)

// Mail is a mock type for the dependency.Mail interface
type Mail struct {
	mock.Mock
}

func (m *Mail) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	ret := m.Called(ctx, ser)
	return ret.Get(0).(int), ret.Error(1)
}

func (m *Mail) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	ret := m.Called(ctx, withError)
	var srs []entity.SendEmailRequest
	if ret.Get(0) != nil {
		srs = ret.Get(0).([]entity.SendEmailRequest)
	}
	return srs, ret.Error(1)
}

func (m *Mail) UpdateSent(ctx context.Context, id int) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *Mail) AddError(ctx context.Context, id int, errMsg string) error {
	ret := m.Called(ctx, id, errMsg)
	return ret.Error(0)
}
