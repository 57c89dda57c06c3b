package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"go.etcd.io/bbolt"
)

// boltBucketCredentials is the bucket holding every credential key.
const boltBucketCredentials = "credentials"

var _ ClosableStore = (*BoltStore)(nil)

// BoltStore keeps credentials in a bbolt database. Each operation is its own
// transaction.
type BoltStore struct {
	db *bbolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), credentialDirPerm); err != nil {
		return nil, fmt.Errorf("creating credential directory: %w", err)
	}

	db, err := bbolt.Open(path, credentialFilePerm, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %q: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

func (bs *BoltStore) Set(_ context.Context, key Key, value string) (err error) {
	tx, err := bs.db.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	needRollback := true
	defer func() {
		if needRollback {
			err = apperrors.Join(err, tx.Rollback())
		}
	}()

	bkt, err := tx.CreateBucketIfNotExists([]byte(boltBucketCredentials))
	if err != nil {
		return fmt.Errorf("creating bucket: %w", err)
	}

	if err = bkt.Put([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("putting %q: %w", key, err)
	}

	needRollback = false
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (bs *BoltStore) Get(_ context.Context, key Key) (value string, ok bool, err error) {
	err = bs.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(boltBucketCredentials))
		if bkt == nil {
			return nil
		}
		if v := bkt.Get([]byte(key)); v != nil {
			// string conversion copies; v is only valid inside the transaction.
			value, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, ok, nil
}

func (bs *BoltStore) Remove(_ context.Context, key Key) error {
	err := bs.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(boltBucketCredentials))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}
