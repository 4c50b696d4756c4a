package pixelize

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// Cache stores rendered PNG images keyed by the SHA-1 of their source and
// render settings. Images are compressed with zstd.
type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCache opens, or creates, the cache database in file
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS render (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, png BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

// Get returns the PNG stored under sha, or nil if there is none
func (c *Cache) Get(sha string) ([]byte, error) {
	var blob []byte
	switch err := c.db.QueryRow("SELECT png FROM render WHERE sha1 = ?", sha).Scan(&blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return c.dec.DecodeAll(blob, nil)
	default:
		return nil, err
	}
}

// Put stores b under sha, replacing any existing entry
func (c *Cache) Put(sha string, b []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO render (sha1, png) VALUES (?, ?)", sha, c.enc.EncodeAll(b, nil)); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached images
func (c *Cache) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM render").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached image
func (c *Cache) Purge() error {
	if _, err := c.db.Exec("DELETE FROM render"); err != nil {
		return err
	}
	return nil
}
