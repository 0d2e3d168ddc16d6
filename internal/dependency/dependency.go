package dependency

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/qellagg/qella-waitlist/internal/entity"
)

type (
	// Waitlist is the persistence contract for waitlist entries.
	Waitlist interface {
		// Register creates a new entry and returns its store-assigned
		// waitlist number. Uniqueness of email and username is enforced
		// at write time; violations surface as gerr.ErrEmailTaken or
		// gerr.ErrUsernameTaken.
		Register(ctx context.Context, email, username string) (int, error)
		// EmailExists reports whether an entry with the normalized email
		// exists. Advisory read, may race with concurrent writes.
		EmailExists(ctx context.Context, email string) (bool, error)
		// UsernameExists reports whether an entry with the normalized
		// username exists. Advisory read, may race with concurrent writes.
		UsernameExists(ctx context.Context, username string) (bool, error)
		// GetEntryByUsername returns the entry for the normalized username.
		GetEntryByUsername(ctx context.Context, username string) (*entity.WaitlistEntry, error)
		// Count returns the number of entries ever created.
		Count(ctx context.Context) (int, error)
	}

	// Mail is the outbox for confirmation emails.
	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	// Repository aggregates the store interfaces. Two realizations exist:
	// the relational one (internal/store) and the document one
	// (internal/store/bunt).
	Repository interface {
		Waitlist() Waitlist
		Mail() Mail
		Close()
	}

	// DB represents the sqlx database surface used by the relational store.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// Sender sends a built message through the transactional email
	// provider. *sendgrid.Client satisfies it.
	Sender interface {
		Send(email *sgmail.SGMailV3) (*rest.Response, error)
	}

	// Mailer dispatches waitlist confirmation emails through the outbox.
	Mailer interface {
		SendWaitlistConfirmation(ctx context.Context, rep Repository, to, username, waitlistNumber string) error
		Start(ctx context.Context) error
		Stop() error
	}

	// Registration is the service surface consumed by the HTTP layer.
	Registration interface {
		Register(ctx context.Context, email, username string) (string, error)
		IsEmailAvailable(ctx context.Context, email string) (bool, error)
		IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	}
)
