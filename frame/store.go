/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sat Apr  7 13:02:11 2018 mstenber
 * Last modified: Sat Apr  7 14:25:40 2018 mstenber
 * Edit time:     37 min
 *
 */

package frame

import (
	"time"

	bbolt "github.com/coreos/bbolt"
	"github.com/pkg/errors"

	"github.com/fingon/go-bptree/mlog"
	"github.com/fingon/go-bptree/util"
)

var framesBucket = []byte("frames")

// Store persists frames in a bbolt database, keyed by step. Keys are
// big-endian so iteration is in step order.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens (or creates) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt.Open %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(framesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	mlog.Printf2("frame/store", "OpenStore %s", path)
	return &Store{db: db}, nil
}

func (self *Store) Close() error {
	return self.db.Close()
}

func stepKey(step int) ([]byte, error) {
	if step < 0 {
		return nil, errors.Errorf("frame: negative step %d", step)
	}
	return util.Uint64Bytes(uint64(step)), nil
}

// Put stores f, replacing any earlier frame with the same step.
func (self *Store) Put(f *Frame) error {
	k, err := stepKey(f.Step)
	if err != nil {
		return err
	}
	b, err := Encode(f)
	if err != nil {
		return err
	}
	mlog.Printf2("frame/store", "Put step %d (%d b)", f.Step, len(b))
	return self.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(framesBucket).Put(k, b)
	})
}

// Get returns the frame for step, or ErrNotFound.
func (self *Store) Get(step int) (f *Frame, err error) {
	k, err := stepKey(step)
	if err != nil {
		return nil, err
	}
	err = self.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(framesBucket).Get(k)
		if b == nil {
			return errors.Wrapf(ErrNotFound, "step %d", step)
		}
		f, err = Decode(b)
		return err
	})
	return
}

// Count returns the number of stored frames.
func (self *Store) Count() (n int, err error) {
	err = self.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(framesBucket).Stats().KeyN
		return nil
	})
	return
}

// ForEach calls fn for every frame in step order. An error from fn
// stops the iteration and is returned.
func (self *Store) ForEach(fn func(f *Frame) error) error {
	return self.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(framesBucket).ForEach(func(k, v []byte) error {
			f, err := Decode(v)
			if err != nil {
				return errors.Wrapf(err, "step %d", util.BytesUint64(k))
			}
			return fn(f)
		})
	})
}
