package cache

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	apperrors "collabgraph/backend/pkg/errors"
	"collabgraph/backend/pkg/logger"
)

// BadgerCache is a Cache backed by BadgerDB. Entries carry a native badger
// TTL, so expiry needs no sweeper of our own.
type BadgerCache struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (or creates) a badger-backed cache at dir. An empty dir opens
// an in-memory instance, used by tests and development setups.
func Open(dir string) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.NewCacheUnavailable(dir, err)
	}

	return &BadgerCache{
		db:     db,
		logger: logger.Get(),
	}, nil
}

// Get returns the cached value and whether the key was present and unexpired
func (c *BadgerCache) Get(key string) ([]byte, bool, error) {
	var value []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}

	return value, true, nil
}

// Set stores a value that expires after ttl
func (c *BadgerCache) Set(key string, value []byte, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Close closes the underlying database
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
