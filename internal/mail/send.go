package mail

import (
	"context"
	"fmt"

	"github.com/qellagg/qella-waitlist/internal/dependency"
)

const (
	WaitlistConfirmation = "waitlist_confirmation.gohtml"
)

const waitlistConfirmationSubject = "You're on the list, @%s"

type waitlistConfirmationData struct {
	Username       string
	WaitlistNumber string
}

// SendWaitlistConfirmation sends the signup confirmation email embedding
// the handle and the zero-padded waitlist number. The registration that
// triggered it has already committed; failures here are logged and retried
// by the worker, never propagated back to the registration call.
func (m *Mailer) SendWaitlistConfirmation(ctx context.Context, rep dependency.Repository, to, username, waitlistNumber string) error {
	ser, err := m.buildSendMailRequest(
		to,
		WaitlistConfirmation,
		fmt.Sprintf(waitlistConfirmationSubject, username),
		waitlistConfirmationData{
			Username:       username,
			WaitlistNumber: waitlistNumber,
		},
	)
	if err != nil {
		return fmt.Errorf("error building confirmation email: %w", err)
	}

	return m.sendWithInsert(ctx, rep, ser)
}
