package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestDB connects to the database pointed at by WAITLIST_TEST_MYSQL_DSN
// and truncates the waitlist tables. Tests are skipped when the variable is
// not set.
func newTestDB(t *testing.T) *MYSQLStore {
	dsn := os.Getenv("WAITLIST_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("WAITLIST_TEST_MYSQL_DSN not set")
	}

	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	assert.NoError(t, err)

	_, err = db.db.ExecContext(context.Background(), "DELETE FROM waitlist")
	assert.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "ALTER TABLE waitlist AUTO_INCREMENT = 1")
	assert.NoError(t, err)
	_, err = db.db.ExecContext(context.Background(), "DELETE FROM send_email_request")
	assert.NoError(t, err)

	return db
}
