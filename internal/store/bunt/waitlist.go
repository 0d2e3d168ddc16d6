package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/buntdb"

	"github.com/qellagg/qella-waitlist/internal/entity"
	gerr "github.com/qellagg/qella-waitlist/internal/errors"
)

const (
	entryKeyPrefix = "entry:"
	emailKeyPrefix = "email:"
)

func entryKey(username string) string {
	return entryKeyPrefix + username
}

func emailKey(email string) string {
	return emailKeyPrefix + email
}

// Register creates a new waitlist entry. The whole check-count-insert
// sequence runs inside a single buntdb Update, which holds the sole writer
// lock, so the count-of-entries+1 number can never be handed out twice.
// Callers must pass already normalized values.
func (db *BuntDB) Register(ctx context.Context, email, username string) (int, error) {
	var number int
	err := db.waitlist.Update(func(tx *buntdb.Tx) error {
		if _, err := tx.Get(emailKey(email)); err == nil {
			return gerr.ErrEmailTaken
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		if _, err := tx.Get(entryKey(username)); err == nil {
			return gerr.ErrUsernameTaken
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}

		count, err := countEntries(tx)
		if err != nil {
			return err
		}
		number = count + 1

		entry := entity.WaitlistEntry{
			Id:             uuid.New().String(),
			Email:          email,
			Username:       username,
			WaitlistNumber: number,
			CreatedAt:      time.Now().UTC(),
		}
		raw, err := json.Marshal(&entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}

		if _, _, err := tx.Set(entryKey(username), string(raw), nil); err != nil {
			return fmt.Errorf("failed to set entry: %w", err)
		}
		if _, _, err := tx.Set(emailKey(email), username, nil); err != nil {
			return fmt.Errorf("failed to set email index: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return number, nil
}

// EmailExists checks if an email is already on the waitlist.
func (db *BuntDB) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.waitlist.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get(emailKey(email))
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UsernameExists checks if a username is already on the waitlist.
func (db *BuntDB) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.waitlist.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get(entryKey(username))
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// GetEntryByUsername retrieves a waitlist entry by its normalized username.
func (db *BuntDB) GetEntryByUsername(ctx context.Context, username string) (*entity.WaitlistEntry, error) {
	entry := &entity.WaitlistEntry{}
	err := db.waitlist.View(func(tx *buntdb.Tx) error {
		raw, err := tx.Get(entryKey(username))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(raw), entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return entry, nil
}

// Count returns the number of waitlist entries ever created.
func (db *BuntDB) Count(ctx context.Context) (int, error) {
	var count int
	err := db.waitlist.View(func(tx *buntdb.Tx) error {
		var err error
		count, err = countEntries(tx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}

func countEntries(tx *buntdb.Tx) (int, error) {
	count := 0
	err := tx.AscendKeys(entryKeyPrefix+"*", func(key, _ string) bool {
		if strings.HasPrefix(key, entryKeyPrefix) {
			count++
		}
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return count, nil
}
