package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/yoas/yoas/pkg/errors"
)

// schema is applied on every Open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id         INTEGER NOT NULL PRIMARY KEY,
	ban_reason      TEXT,
	additional_info TEXT,
	utc_created_at  REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id      INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	text    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_user_id ON messages(user_id);
CREATE INDEX IF NOT EXISTS idx_messages_text ON messages(text);
`

// Store provides access to the ban database: banned users and the spam
// messages that got them banned.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema. Use ":memory:" for an ephemeral database in tests.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to open database %q", path), err)
	}

	// SQLite serializes writers anyway; a single connection also keeps
	// :memory: databases from fragmenting across the pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to apply schema to %q", path), err)
	}

	slog.Debug("database opened", "path", path)

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}
