package mocks

import (
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"
)

// Sender is a mock type for the dependency.Sender interface
type Sender struct {
	mock.Mock
}

func (m *Sender) Send(email *sgmail.SGMailV3) (*rest.Response, error) {
	ret := m.Called(email)
	var resp *rest.Response
	if ret.Get(0) != nil {
		resp = ret.Get(0).(*rest.Response)
	}
	return resp, ret.Error(1)
}
