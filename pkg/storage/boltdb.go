package storage

import (
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/yuan-yuan-jia/lightflus/pkg/errs"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

var bucketDataflow = []byte("dataflow")

// BoltStore is the persistent DataflowStorage backend: one bbolt database
// file, one bucket, keys and values canonically encoded.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if absent) a bbolt database under dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "lightflus.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDataflow)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Save(jobID types.JobId, df *types.Dataflow) error {
	key, err := types.Encode(jobID)
	if err != nil {
		return errs.Wrap(errs.StorageSaveFailed, err)
	}
	value, err := types.Encode(df)
	if err != nil {
		return errs.Wrap(errs.StorageSaveFailed, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDataflow).Put(key, value)
	})
	if err != nil {
		return errs.Wrap(errs.StorageSaveFailed, err)
	}
	return nil
}

// Get fetches and decodes the stored record for jobID. A record that fails
// to decode is treated the same as a missing one: the corruption is logged
// (it needs an operator to notice, since it isn't returned to the caller as
// a raw error) and Get reports not-found rather than surfacing a decode
// error the caller has no way to act on.
func (s *BoltStore) Get(jobID types.JobId) (*types.Dataflow, error) {
	key, err := types.Encode(jobID)
	if err != nil {
		return nil, errs.Wrap(errs.StorageGetFailed, err)
	}

	var raw []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketDataflow).Get(key)
		if value != nil {
			raw = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageGetFailed, err)
	}
	if raw == nil {
		return nil, ErrNotFound()
	}

	var df types.Dataflow
	if err := types.Decode(raw, &df); err != nil {
		log.WithComponent("storage").Error().Err(err).
			Str("job_id", jobID.String()).
			Msg("corrupt dataflow record, reporting as not found")
		return nil, ErrNotFound()
	}
	return &df, nil
}

func (s *BoltStore) MayExist(jobID types.JobId) (bool, error) {
	key, err := types.Encode(jobID)
	if err != nil {
		return false, errs.Wrap(errs.StorageGetFailed, err)
	}

	exists := false
	err = s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(bucketDataflow).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, errs.Wrap(errs.StorageGetFailed, err)
	}
	return exists, nil
}

func (s *BoltStore) Delete(jobID types.JobId) error {
	key, err := types.Encode(jobID)
	if err != nil {
		return errs.Wrap(errs.StorageDeleteFailed, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDataflow).Delete(key)
	})
	if err != nil {
		return errs.Wrap(errs.StorageDeleteFailed, err)
	}
	return nil
}
