package core

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Slot is a single key-value storage slot holding the serialized note list.
type Slot interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}

var slotsBucket = []byte("slots")

// BoltSlot keeps one key of a bbolt database.
type BoltSlot struct {
	db  *bolt.DB
	key []byte
}

func OpenBoltSlot(home, file, key string) (*BoltSlot, error) {
	err := os.MkdirAll(home, 0755)
	if err != nil && !os.IsExist(err) {
		return nil, errors.Wrap(err, "create home directory")
	}

	db, err := bolt.Open(filepath.Join(home, file), 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", file)
	}

	return &BoltSlot{
		db:  db,
		key: []byte(key),
	}, nil
}

func (s *BoltSlot) Load() ([]byte, error) {
	var res []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(slotsBucket)
		if b == nil {
			return nil
		}

		data := b.Get(s.key)
		if data == nil {
			return nil
		}

		// data is only valid for the life of the transaction
		res = append([]byte{}, data...)

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "load slot")
	}

	return res, nil
}

func (s *BoltSlot) Save(data []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(slotsBucket)
		if err != nil {
			return err
		}

		return b.Put(s.key, data)
	})

	return errors.Wrap(err, "save slot")
}

func (s *BoltSlot) Close() error {
	return s.db.Close()
}

// MemorySlot is an in-process Slot.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot(initial []byte) *MemorySlot {
	return &MemorySlot{data: initial}
}

func (s *MemorySlot) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}

	return append([]byte{}, s.data...), nil
}

func (s *MemorySlot) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte{}, data...)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
