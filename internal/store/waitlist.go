package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/qellagg/qella-waitlist/internal/dependency"
	"github.com/qellagg/qella-waitlist/internal/entity"
	gerr "github.com/qellagg/qella-waitlist/internal/errors"
)

type waitlistStore struct {
	*MYSQLStore
}

// Waitlist returns an object implementing Waitlist interface
func (ms *MYSQLStore) Waitlist() dependency.Waitlist {
	return &waitlistStore{
		MYSQLStore: ms,
	}
}

// Register inserts a new waitlist entry and returns the waitlist number
// assigned by the store. The number is the table's auto-increment column,
// so concurrent registrations can never collide on it. Uniqueness of email
// and username is re-checked inside the transaction and additionally
// enforced by unique keys at write time; callers must pass already
// normalized values.
func (ms *MYSQLStore) Register(ctx context.Context, email, username string) (int, error) {
	var number int
	err := ms.Tx(ctx, func(ctx context.Context, txs *MYSQLStore) error {
		taken, err := txs.EmailExists(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return gerr.ErrEmailTaken
		}

		taken, err = txs.UsernameExists(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return gerr.ErrUsernameTaken
		}

		query := `INSERT INTO waitlist (id, email, username) VALUES (:id, :email, :username)`
		params := map[string]any{
			"id":       uuid.New().String(),
			"email":    email,
			"username": username,
		}

		number, err = ExecNamedLastId(ctx, txs.DB(), query, params)
		if err != nil {
			// The pre-checks race with writers outside this transaction's
			// snapshot, so a duplicate can still fire here. Map the
			// violated key back to the typed error.
			if txs.IsErrUniqueViolation(err) {
				switch key := uniqueViolationKey(err); {
				case strings.Contains(key, "email"):
					return gerr.ErrEmailTaken
				case strings.Contains(key, "username"):
					return gerr.ErrUsernameTaken
				}
			}
			return fmt.Errorf("failed to insert waitlist entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return number, nil
}

// EmailExists checks if an email is already on the waitlist.
func (ms *MYSQLStore) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT COUNT(*) FROM waitlist WHERE email = :email`
	count, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{
		"email": email,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// UsernameExists checks if a username is already on the waitlist.
func (ms *MYSQLStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM waitlist WHERE username = :username`
	count, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{
		"username": username,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// GetEntryByUsername retrieves a waitlist entry by its normalized username.
func (ms *MYSQLStore) GetEntryByUsername(ctx context.Context, username string) (*entity.WaitlistEntry, error) {
	query := `SELECT * FROM waitlist WHERE username = :username`
	entry, err := QueryNamedOne[entity.WaitlistEntry](ctx, ms.DB(), query, map[string]any{
		"username": username,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return &entry, nil
}

// Count returns the number of waitlist entries ever created.
func (ms *MYSQLStore) Count(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.DB(), `SELECT COUNT(*) FROM waitlist`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return int(count), nil
}
