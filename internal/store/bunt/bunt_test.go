package bunt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qellagg/qella-waitlist/internal/entity"
	gerr "github.com/qellagg/qella-waitlist/internal/errors"
)

func newTestDB(t *testing.T) *BuntDB {
	c := &Config{
		WaitlistPath: ":memory:",
		MailPath:     ":memory:",
	}
	db, err := c.InitDB()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := db.Register(ctx, "alice@example.com", "alice_1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entry, err := db.GetEntryByUsername(ctx, "alice_1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", entry.Email)
	assert.Equal(t, "alice_1", entry.Username)
	assert.Equal(t, 1, entry.WaitlistNumber)
	assert.NotEmpty(t, entry.Id)
	assert.False(t, entry.CreatedAt.IsZero())

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_Sequential(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		n, err := db.Register(ctx, fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("user%d", i))
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func TestRegister_Taken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Register(ctx, "alice@example.com", "alice")
	require.NoError(t, err)

	_, err = db.Register(ctx, "alice@example.com", "bob")
	assert.ErrorIs(t, err, gerr.ErrEmailTaken)

	_, err = db.Register(ctx, "bob@example.com", "alice")
	assert.ErrorIs(t, err, gerr.ErrUsernameTaken)

	// a failed attempt must not consume a number
	n, err := db.Register(ctx, "bob@example.com", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	taken, err := db.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	_, err = db.Register(ctx, "alice@example.com", "alice")
	require.NoError(t, err)

	// idempotent with no intervening writes
	for i := 0; i < 3; i++ {
		taken, err = db.EmailExists(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = db.UsernameExists(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, taken)
	}

	taken, err = db.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRegister_ConcurrentDistinct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	const workers = 16
	numbers := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := db.Register(ctx, fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("user%d", i))
			assert.NoError(t, err)
			numbers[i] = n
		}(i)
	}
	wg.Wait()

	sort.Ints(numbers)
	for i := 0; i < workers; i++ {
		assert.Equal(t, i+1, numbers[i], "numbers must form 1..N with no duplicates or gaps")
	}
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.Register(ctx, fmt.Sprintf("user%d@example.com", i), "duplicate")
		}(i)
	}
	wg.Wait()

	var successes, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, gerr.ErrUsernameTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, taken)
}

func TestMailOutbox(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.AddMail(ctx, &entity.SendEmailRequest{
		From:    "qella <hello@qella.gg>",
		To:      "alice@example.com",
		Html:    "<html></html>",
		Subject: "You're on the list, @alice",
		ReplyTo: "hello@qella.gg",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	unsent, err := db.GetAllUnsent(ctx, false)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	assert.Equal(t, "alice@example.com", unsent[0].To)

	err = db.AddError(ctx, id, "provider unavailable")
	require.NoError(t, err)

	unsent, err = db.GetAllUnsent(ctx, false)
	require.NoError(t, err)
	assert.Len(t, unsent, 0)

	unsent, err = db.GetAllUnsent(ctx, true)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	assert.Equal(t, sql.NullString{String: "provider unavailable", Valid: true}, unsent[0].ErrMsg)

	err = db.UpdateSent(ctx, id)
	require.NoError(t, err)

	unsent, err = db.GetAllUnsent(ctx, true)
	require.NoError(t, err)
	assert.Len(t, unsent, 0)
}
