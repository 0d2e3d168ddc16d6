package bunt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/qellagg/qella-waitlist/internal/entity"
)

const (
	mailKeyPrefix = "req:"
	mailSeqKey    = "seq"
)

func mailKey(id int) string {
	// zero-padded so lexical key order matches insertion order
	return fmt.Sprintf("%s%012d", mailKeyPrefix, id)
}

func (db *BuntDB) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	var id int
	err := db.mail.Update(func(tx *buntdb.Tx) error {
		seq := 0
		raw, err := tx.Get(mailSeqKey)
		if err == nil {
			seq, err = strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("corrupt mail sequence: %w", err)
			}
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}
		id = seq + 1

		req := *ser
		req.Id = id
		req.CreatedAt = time.Now().UTC()
		body, err := json.Marshal(&req)
		if err != nil {
			return fmt.Errorf("failed to marshal mail: %w", err)
		}

		if _, _, err := tx.Set(mailSeqKey, strconv.Itoa(id), nil); err != nil {
			return err
		}
		if _, _, err := tx.Set(mailKey(id), string(body), nil); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add mail: %w", err)
	}

	return id, nil
}

func (db *BuntDB) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	var srs []entity.SendEmailRequest
	err := db.mail.View(func(tx *buntdb.Tx) error {
		var inner error
		err := tx.AscendKeys(mailKeyPrefix+"*", func(_, raw string) bool {
			var req entity.SendEmailRequest
			if err := json.Unmarshal([]byte(raw), &req); err != nil {
				inner = fmt.Errorf("failed to unmarshal mail: %w", err)
				return false
			}
			if req.Sent {
				return true
			}
			if !withError && req.ErrMsg.Valid {
				return true
			}
			srs = append(srs, req)
			return true
		})
		if inner != nil {
			return inner
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get unsent mails: %w", err)
	}

	return srs, nil
}

func (db *BuntDB) UpdateSent(ctx context.Context, id int) error {
	return db.updateMail(id, func(req *entity.SendEmailRequest) {
		req.Sent = true
		req.SentAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	})
}

func (db *BuntDB) AddError(ctx context.Context, id int, errMsg string) error {
	return db.updateMail(id, func(req *entity.SendEmailRequest) {
		req.ErrMsg = sql.NullString{String: errMsg, Valid: true}
	})
}

func (db *BuntDB) updateMail(id int, apply func(*entity.SendEmailRequest)) error {
	err := db.mail.Update(func(tx *buntdb.Tx) error {
		raw, err := tx.Get(mailKey(id))
		if err != nil {
			return err
		}
		var req entity.SendEmailRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return fmt.Errorf("failed to unmarshal mail: %w", err)
		}

		apply(&req)

		body, err := json.Marshal(&req)
		if err != nil {
			return fmt.Errorf("failed to marshal mail: %w", err)
		}
		_, _, err = tx.Set(mailKey(id), string(body), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update mail %d: %w", id, err)
	}
	return nil
}
