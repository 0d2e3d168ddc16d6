package gerr

import "errors"

var (
	// ErrInvalidInput is returned when an email or username fails syntax
	// rules, or a username is reserved.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken is returned when the normalized email is already on the waitlist.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken is returned when the normalized username is already on the waitlist.
	ErrUsernameTaken = errors.New("username already taken")

	MailApiLimitReached = errors.New("mail api limit reached")
)
