package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nissyi-gh/taskroom/internal/model"
	_ "modernc.org/sqlite"
)

// Keys under which the session is remembered for each origin.
const (
	RoomKey = "tm_room"
	NameKey = "tm_name"
)

// SessionStore is a durable key-value store scoped by backend origin.
type SessionStore struct {
	db *sql.DB
}

// DefaultPath returns $XDG_DATA_HOME/taskroom/taskroom.db, creating the directory.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "taskroom")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskroom.db"), nil
}

// NewSessionStore opens (or creates) the SQLite database and ensures the schema exists.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("determine db path: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS session (
		origin TEXT NOT NULL,
		key    TEXT NOT NULL,
		value  TEXT NOT NULL,
		PRIMARY KEY (origin, key)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := migrateUpdatedAt(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate updated_at: %w", err)
	}

	return &SessionStore{db: db}, nil
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dfltValue sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func migrateUpdatedAt(db *sql.DB) error {
	ok, err := hasColumn(db, "session", "updated_at")
	if err != nil || ok {
		return err
	}
	_, err = db.Exec("ALTER TABLE session ADD COLUMN updated_at TEXT")
	return err
}

// Get returns the value stored under key for origin. ok is false when there is none.
func (s *SessionStore) Get(origin, key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM session WHERE origin = ? AND key = ?", origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key for origin, replacing any previous value.
func (s *SessionStore) Set(origin, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session (origin, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		origin, key, value, time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key for origin.
func (s *SessionStore) Delete(origin, key string) error {
	if _, err := s.db.Exec("DELETE FROM session WHERE origin = ? AND key = ?", origin, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// LoadSession returns the remembered room and user for origin. Missing
// values are left empty.
func (s *SessionStore) LoadSession(origin string) (model.Session, error) {
	room, _, err := s.Get(origin, RoomKey)
	if err != nil {
		return model.Session{}, err
	}
	user, _, err := s.Get(origin, NameKey)
	if err != nil {
		return model.Session{}, err
	}
	return model.NewSession(origin, room, user), nil
}

// SaveSession remembers the non-empty fields of sess.
func (s *SessionStore) SaveSession(sess model.Session) error {
	if sess.Room != "" {
		if err := s.Set(sess.Origin, RoomKey, sess.Room); err != nil {
			return err
		}
	}
	if sess.User != "" {
		if err := s.Set(sess.Origin, NameKey, sess.User); err != nil {
			return err
		}
	}
	return nil
}

// Resolve merges explicit values with the remembered ones. Explicit values
// win and are persisted; empty ones fall back to what is stored.
func (s *SessionStore) Resolve(origin, room, user string) (model.Session, error) {
	given := model.NewSession(origin, room, user)
	if err := s.SaveSession(given); err != nil {
		return model.Session{}, err
	}
	return s.LoadSession(origin)
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
