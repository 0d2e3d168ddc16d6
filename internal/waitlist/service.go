package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/qellagg/qella-waitlist/internal/dependency"
	gerr "github.com/qellagg/qella-waitlist/internal/errors"
	"github.com/qellagg/qella-waitlist/internal/validate"
)

const notifyTimeout = 30 * time.Second

// Service implements waitlist registration: validation, uniqueness
// enforcement, sequential numbering and confirmation dispatch.
type Service struct {
	repo      dependency.Repository
	mailer    dependency.Mailer
	validator *validate.Validator
}

// New creates a new registration service.
func New(repo dependency.Repository, mailer dependency.Mailer, validator *validate.Validator) *Service {
	return &Service{
		repo:      repo,
		mailer:    mailer,
		validator: validator,
	}
}

// IsEmailAvailable reports whether the email can still be claimed.
// Advisory only: it exists for interactive feedback and may race with
// concurrent signups; Register re-verifies at commit time. Syntactically
// invalid input returns false without touching the store.
func (s *Service) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	if !s.validator.IsValidEmail(email) {
		return false, nil
	}
	taken, err := s.repo.Waitlist().EmailExists(ctx, validate.NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("failed to check email availability: %w", err)
	}
	return !taken, nil
}

// IsUsernameAvailable reports whether the username can still be claimed.
// Advisory only, see IsEmailAvailable. Invalid or reserved usernames return
// false without touching the store.
func (s *Service) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	u := validate.NormalizeUsername(username)
	if !s.validator.IsValidUsername(u) || s.validator.IsReserved(u) {
		return false, nil
	}
	taken, err := s.repo.Waitlist().UsernameExists(ctx, u)
	if err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return !taken, nil
}

// Register claims a spot on the waitlist and returns the assigned number as
// a zero-padded 4-digit string. Inputs are normalized and fully re-validated
// here regardless of any client-side checks. The confirmation email is
// scheduled after the commit and never gates the response.
func (s *Service) Register(ctx context.Context, email, username string) (string, error) {
	e := validate.NormalizeEmail(email)
	u := validate.NormalizeUsername(username)

	if !s.validator.IsValidEmail(e) || !s.validator.IsValidUsername(u) || s.validator.IsReserved(u) {
		return "", gerr.ErrInvalidInput
	}

	number, err := s.repo.Waitlist().Register(ctx, e, u)
	if err != nil {
		if errors.Is(err, gerr.ErrEmailTaken) || errors.Is(err, gerr.ErrUsernameTaken) {
			return "", err
		}
		return "", fmt.Errorf("failed to register: %w", err)
	}

	// %04d pads to width 4 and never truncates larger numbers
	padded := fmt.Sprintf("%04d", number)

	go s.notify(e, u, padded)

	return padded, nil
}

// notify dispatches the confirmation email decoupled from the registration
// call. Errors are logged and dropped; the outbox worker picks up anything
// that failed after being recorded.
func (s *Service) notify(to, username, waitlistNumber string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.mailer.SendWaitlistConfirmation(ctx, s.repo, to, username, waitlistNumber); err != nil {
		slog.Default().ErrorContext(ctx, "can't send waitlist confirmation",
			slog.String("err", err.Error()),
			slog.String("username", username),
		)
	}
}
