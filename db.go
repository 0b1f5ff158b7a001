package rle565

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores previously converted images keyed by the SHA-1 of the input
// bytes and the color reduction applied.
type Cache struct {
	db *sql.DB
}

// NewCache opens, creating if necessary, the cache database at file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Serialize writers from the batch workers
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS rle (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, colors INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, colors))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Entry is a cached conversion.
type Entry struct {
	Width  int
	Height int
	Data   []byte
}

// Find returns the cached conversion for the given input hash and color
// setting, or nil if there is none.
func (c *Cache) Find(sha string, colors int) (*Entry, error) {
	var e Entry
	switch err := c.db.QueryRow("SELECT width, height, data FROM rle WHERE sha1 = ? AND colors = ?", sha, colors).Scan(&e.Width, &e.Height, &e.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if e.Data == nil {
			e.Data = []byte{}
		}
		return &e, nil
	default:
		return nil, err
	}
}

// Add stores a conversion, replacing any previous one with the same key.
func (c *Cache) Add(sha string, colors int, e *Entry) error {
	data := e.Data
	if data == nil {
		data = []byte{}
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO rle (sha1, colors, width, height, data) VALUES (?, ?, ?, ?, ?)", sha, colors, e.Width, e.Height, data); err != nil {
		return err
	}
	return nil
}
