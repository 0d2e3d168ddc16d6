package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/qellagg/qella-waitlist/internal/dependency"
)

// Repository is a mock type for the dependency.Repository interface
type Repository struct {
	mock.Mock
}

func (m *Repository) Waitlist() dependency.Waitlist {
	ret := m.Called()
	return ret.Get(0).(dependency.Waitlist)
}

func (m *Repository) Mail() dependency.Mail {
	ret := m.Called()
	return ret.Get(0).(dependency.Mail)
}

func (m *Repository) Close() {
	m.Called()
}
