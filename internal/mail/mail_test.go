package mail

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qellagg/qella-waitlist/internal/dependency/mocks"
	"github.com/qellagg/qella-waitlist/internal/entity"
)

func testConfig() *Config {
	return &Config{
		APIKey:         "test-key",
		FromEmail:      "hello@qella.gg",
		FromName:       "qella",
		ReplyTo:        "hello@qella.gg",
		WorkerInterval: 50 * time.Millisecond,
	}
}

func newTestMailer(t *testing.T, sender *mocks.Sender, mailRepo *mocks.Mail) *Mailer {
	m, err := newMailer(testConfig(), sender, mailRepo)
	require.NoError(t, err)
	return m
}

func TestBuildSendMailRequest(t *testing.T) {
	m := newTestMailer(t, &mocks.Sender{}, &mocks.Mail{})

	ser, err := m.buildSendMailRequest(
		"alice@example.com",
		WaitlistConfirmation,
		"You're on the list, @alice_1",
		waitlistConfirmationData{Username: "alice_1", WaitlistNumber: "0007"},
	)
	require.NoError(t, err)

	assert.Equal(t, "hello@qella.gg", ser.From)
	assert.Equal(t, "alice@example.com", ser.To)
	assert.Equal(t, "You're on the list, @alice_1", ser.Subject)
	assert.Contains(t, ser.Html, "@alice_1")
	assert.Contains(t, ser.Html, "#0007")
	assert.Contains(t, ser.Html, "qella.gg")
}

func TestBuildSendMailRequest_UnknownTemplate(t *testing.T) {
	m := newTestMailer(t, &mocks.Sender{}, &mocks.Mail{})

	_, err := m.buildSendMailRequest("alice@example.com", "nope.gohtml", "subject", nil)
	assert.Error(t, err)
}

func TestSendWaitlistConfirmation(t *testing.T) {
	sender := &mocks.Sender{}
	mailRepo := &mocks.Mail{}
	repo := &mocks.Repository{}
	repo.On("Mail").Return(mailRepo)
	m := newTestMailer(t, sender, mailRepo)

	mailRepo.On("AddMail", mock.Anything, mock.MatchedBy(func(ser *entity.SendEmailRequest) bool {
		return ser.To == "alice@example.com" && ser.Subject == "You're on the list, @alice_1"
	})).Return(1, nil)
	sender.On("Send", mock.MatchedBy(func(email *sgmail.SGMailV3) bool {
		return email.Subject == "You're on the list, @alice_1"
	})).Return(&rest.Response{StatusCode: http.StatusAccepted}, nil)
	mailRepo.On("UpdateSent", mock.Anything, 1).Return(nil)

	err := m.SendWaitlistConfirmation(context.Background(), repo, "alice@example.com", "alice_1", "0007")
	assert.NoError(t, err)

	mailRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestSendWaitlistConfirmation_ProviderFailureIsSwallowed(t *testing.T) {
	sender := &mocks.Sender{}
	mailRepo := &mocks.Mail{}
	repo := &mocks.Repository{}
	repo.On("Mail").Return(mailRepo)
	m := newTestMailer(t, sender, mailRepo)

	mailRepo.On("AddMail", mock.Anything, mock.Anything).Return(1, nil)
	sender.On("Send", mock.Anything).Return(nil, assert.AnError)

	// the row stays unsent for the worker, the caller sees no error
	err := m.SendWaitlistConfirmation(context.Background(), repo, "alice@example.com", "alice_1", "0007")
	assert.NoError(t, err)

	mailRepo.AssertNotCalled(t, "UpdateSent", mock.Anything, mock.Anything)
}

func TestHandleUnsent(t *testing.T) {
	sender := &mocks.Sender{}
	mailRepo := &mocks.Mail{}
	m := newTestMailer(t, sender, mailRepo)

	unsent := []entity.SendEmailRequest{
		{Id: 1, From: "hello@qella.gg", To: "a@b.com", Subject: "s1", Html: "<html></html>"},
		{Id: 2, From: "hello@qella.gg", To: "c@d.com", Subject: "s2", Html: "<html></html>"},
	}
	mailRepo.On("GetAllUnsent", mock.Anything, false).Return(unsent, nil)
	sender.On("Send", mock.MatchedBy(func(email *sgmail.SGMailV3) bool {
		return email.Subject == "s1"
	})).Return(&rest.Response{StatusCode: http.StatusAccepted}, nil)
	sender.On("Send", mock.MatchedBy(func(email *sgmail.SGMailV3) bool {
		return email.Subject == "s2"
	})).Return(&rest.Response{StatusCode: http.StatusBadRequest, Body: "bad request"}, nil)
	mailRepo.On("UpdateSent", mock.Anything, 1).Return(nil)
	mailRepo.On("AddError", mock.Anything, 2, mock.Anything).Return(nil)

	err := m.handleUnsent(context.Background())
	assert.NoError(t, err)

	mailRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestHandleUnsent_ApiLimitStopsBatch(t *testing.T) {
	sender := &mocks.Sender{}
	mailRepo := &mocks.Mail{}
	m := newTestMailer(t, sender, mailRepo)

	unsent := []entity.SendEmailRequest{
		{Id: 1, From: "hello@qella.gg", To: "a@b.com", Subject: "s1", Html: "<html></html>"},
		{Id: 2, From: "hello@qella.gg", To: "c@d.com", Subject: "s2", Html: "<html></html>"},
	}
	mailRepo.On("GetAllUnsent", mock.Anything, false).Return(unsent, nil)
	sender.On("Send", mock.Anything).Return(&rest.Response{StatusCode: http.StatusTooManyRequests}, nil).Once()

	err := m.handleUnsent(context.Background())
	assert.NoError(t, err)

	// nothing after the rate-limited send is attempted or marked
	sender.AssertNumberOfCalls(t, "Send", 1)
	mailRepo.AssertNotCalled(t, "AddError", mock.Anything, mock.Anything, mock.Anything)
	mailRepo.AssertNotCalled(t, "UpdateSent", mock.Anything, mock.Anything)
}

func TestStartStop(t *testing.T) {
	sender := &mocks.Sender{}
	mailRepo := &mocks.Mail{}
	m := newTestMailer(t, sender, mailRepo)

	mailRepo.On("GetAllUnsent", mock.Anything, false).Return(nil, nil).Maybe()

	err := m.Start(context.Background())
	require.NoError(t, err)
	assert.Error(t, m.Start(context.Background()))

	err = m.Stop()
	require.NoError(t, err)
	assert.Error(t, m.Stop())
}
