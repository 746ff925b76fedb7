package dataset

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

// Cache keeps downloaded dataset bodies in a leveldb database keyed by
// source URL.
type Cache struct {
	db *leveldb.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func cacheKey(source string) []byte {
	return fmt.Appendf([]byte{}, "dataset-%s", source)
}

func (c *Cache) Get(source string) ([]byte, bool, error) {
	body, err := c.db.Get(cacheKey(source), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *Cache) Put(source string, body []byte) error {
	return c.db.Put(cacheKey(source), body, nil)
}

func (c *Cache) Delete(source string) error {
	return c.db.Delete(cacheKey(source), nil)
}

func (c *Cache) Close() error {
	return c.db.Close()
}
