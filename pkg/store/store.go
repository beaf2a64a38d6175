// Package store keeps compiled chunks in a SQLite database, addressed by
// the SHA-256 of their wire encoding.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/seed/pkg/bytecode"
)

var log = commonlog.GetLogger("seed.store")

// ErrNotFound indicates no chunk matches the requested hash.
var ErrNotFound = errors.New("chunk not found")

// ErrAmbiguous indicates a hash prefix matches more than one chunk.
var ErrAmbiguous = errors.New("ambiguous hash prefix")

// Entry describes one stored chunk.
type Entry struct {
	Hash    string
	Name    string
	Size    int
	Created time.Time
}

// Store is a content-addressed chunk index backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens (creating if needed) the store at path. The special path
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		hash TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data BLOB NOT NULL,
		created INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Hash returns the content hash of an encoded chunk.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Put encodes chunk and stores it, returning its content hash. Storing the
// same chunk twice is a no-op.
func (s *Store) Put(chunk *bytecode.Chunk) (string, error) {
	data, err := bytecode.MarshalChunk(chunk)
	if err != nil {
		return "", fmt.Errorf("encoding chunk: %w", err)
	}
	return s.PutEncoded(chunk.Name, data)
}

// PutEncoded stores already encoded chunk bytes under name.
func (s *Store) PutEncoded(name string, data []byte) (string, error) {
	hash := Hash(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO chunks (hash, name, data, created) VALUES (?, ?, ?, ?)",
		hash, name, data, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("saving chunk: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Infof("stored %s as %s (%d bytes)", name, hash[:12], len(data))
	}
	return hash, nil
}

// Has reports whether a chunk with the exact hash is stored.
func (s *Store) Has(hash string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE hash = ?", hash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying chunk: %w", err)
	}
	return n > 0, nil
}

// Resolve expands a unique hash prefix to the full hash.
func (s *Store) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.Query("SELECT hash FROM chunks WHERE substr(hash, 1, ?) = ? LIMIT 2", len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return "", fmt.Errorf("scanning hash: %w", err)
		}
		found = append(found, h)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("querying chunks: %w", err)
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s: %w", prefix, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s: %w", prefix, ErrAmbiguous)
	}
}

// GetEncoded returns the stored bytes for hash, which may be a unique
// prefix.
func (s *Store) GetEncoded(hash string) ([]byte, error) {
	full, err := s.Resolve(hash)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = s.db.QueryRow("SELECT data FROM chunks WHERE hash = ?", full).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("querying chunk: %w", err)
	}
	if got := Hash(data); got != full {
		return nil, fmt.Errorf("chunk %s is corrupt: content hashes to %s", full, got)
	}
	return data, nil
}

// Get loads and decodes the chunk for hash, which may be a unique prefix.
func (s *Store) Get(hash string) (*bytecode.Chunk, error) {
	data, err := s.GetEncoded(hash)
	if err != nil {
		return nil, err
	}
	chunk, err := bytecode.UnmarshalChunk(data)
	if err != nil {
		return nil, fmt.Errorf("decoding chunk %s: %w", hash, err)
	}
	return chunk, nil
}

// List returns every stored chunk, oldest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT hash, name, length(data), created FROM chunks ORDER BY created, name, hash")
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.Hash, &e.Name, &e.Size, &created); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the chunk with the exact hash. It reports whether a chunk
// was removed.
func (s *Store) Delete(hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM chunks WHERE hash = ?", hash)
	if err != nil {
		return false, fmt.Errorf("deleting chunk: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
