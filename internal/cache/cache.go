// Package cache provides a small sqlite-backed key/value store with
// per-entry expiry, used to persist OAuth tokens between processes.
package cache

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTimeout is the entry lifetime used when Set is called with a
// non-positive timeout.
const DefaultTimeout = 5 * time.Minute

const (
	createSQL = `CREATE TABLE IF NOT EXISTS cache (key TEXT PRIMARY KEY, value BLOB, exp INTEGER)`
	getSQL    = `SELECT value, exp FROM cache WHERE key = ?`
	setSQL    = `INSERT INTO cache (key, value, exp) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, exp = excluded.exp`
	deleteSQL = `DELETE FROM cache WHERE key = ?`
	clearSQL  = `DELETE FROM cache`
)

// Cache is a sqlite-backed key/value store. Values are opaque byte slices;
// expired entries are evicted lazily on read.
type Cache struct {
	db *sql.DB

	// now is replaceable in tests.
	now func() time.Time
}

// Open creates or opens a cache database at the given path. An empty path
// places the database in the system temp directory.
func Open(path string) (*Cache, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "dataverse-cache.sqlite")
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=1000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Get returns the value stored under key, or ok=false if the key is absent
// or its entry has expired. Expired entries are deleted on the way out.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var value []byte
	var exp int64

	err := c.db.QueryRow(getSQL, key).Scan(&value, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if c.now().Unix() >= exp {
		if err := c.Delete(key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	return value, true, nil
}

// Set stores value under key for the given lifetime. Non-positive timeouts
// fall back to DefaultTimeout.
func (c *Cache) Set(key string, value []byte, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	exp := c.now().Add(timeout).Unix()
	_, err := c.db.Exec(setSQL, key, value, exp)
	return err
}

// Delete removes the entry stored under key.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(deleteSQL, key)
	return err
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	_, err := c.db.Exec(clearSQL)
	return err
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
