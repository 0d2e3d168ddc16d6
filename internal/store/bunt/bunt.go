package bunt

import (
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/qellagg/qella-waitlist/internal/dependency"
)

// Config holds file paths for the buntdb databases. ":memory:" is accepted
// for ephemeral instances.
type Config struct {
	WaitlistPath string `mapstructure:"waitlist_path"`
	MailPath     string `mapstructure:"mail_path"`
}

// BuntDB is the document-store realization of dependency.Repository. It
// holds one database for waitlist entries and one for the mail outbox.
// buntdb serializes all writers, which is what makes the count-then-insert
// numbering in waitlist.go safe.
type BuntDB struct {
	waitlist *buntdb.DB
	mail     *buntdb.DB
}

// InitDB opens the databases and returns a new BuntDB object.
func (c *Config) InitDB() (*BuntDB, error) {
	db := BuntDB{}
	var err error

	db.waitlist, err = buntdb.Open(c.WaitlistPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open waitlist db: %w", err)
	}
	db.mail, err = buntdb.Open(c.MailPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open mail db: %w", err)
	}

	return &db, nil
}

func (db *BuntDB) Waitlist() dependency.Waitlist {
	return db
}

func (db *BuntDB) Mail() dependency.Mail {
	return db
}

func (db *BuntDB) Close() {
	db.waitlist.Close()
	db.mail.Close()
}
