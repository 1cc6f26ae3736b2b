package taxmate

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrAlreadyJoined is returned by AddSignup when the email is on the waitlist.
var ErrAlreadyJoined = errors.New("email already on the waitlist")

// ErrNotFound is returned when a requested signup does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding the waitlist.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the landing page read counts while a signup is being written;
	// busy_timeout makes concurrent writers wait instead of failing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS signups (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
`)
	return err
}

// AddSignup stores a new waitlist entry and returns it with ID and CreatedAt
// filled in. The email is normalized to lowercase; a repeat email returns
// ErrAlreadyJoined.
func (s *Store) AddSignup(email, name string) (Signup, error) {
	sg := Signup{
		ID:        uuid.NewString(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	res, err := s.db.Exec(`INSERT INTO signups (id, email, name, created_at) VALUES (?, ?, ?, ?) ON CONFLICT(email) DO NOTHING`,
		sg.ID, sg.Email, sg.Name, sg.CreatedAt)
	if err != nil {
		return Signup{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Signup{}, err
	}
	if n == 0 {
		return Signup{}, ErrAlreadyJoined
	}
	return sg, nil
}

// GetSignup returns a signup by ID.
func (s *Store) GetSignup(id string) (Signup, error) {
	sg := Signup{ID: id}
	err := s.db.QueryRow(`SELECT email, name, created_at FROM signups WHERE id = ?`, id).
		Scan(&sg.Email, &sg.Name, &sg.CreatedAt)
	if err != nil {
		return Signup{}, err
	}
	return sg, nil
}

// Position returns the 1-based waitlist position of the signup with id.
func (s *Store) Position(id string) (int, error) {
	var pos int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM signups
WHERE rowid <= (SELECT rowid FROM signups WHERE id = ?)`, id).Scan(&pos)
	if err != nil {
		return 0, err
	}
	if pos == 0 {
		return 0, ErrNotFound
	}
	return pos, nil
}

// CountSignups returns the number of waitlist entries.
func (s *Store) CountSignups() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM signups`).Scan(&n)
	return n, err
}

// ListSignups returns every signup ordered by join time, oldest first.
func (s *Store) ListSignups() ([]Signup, error) {
	rows, err := s.db.Query(`SELECT id, email, name, created_at FROM signups ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signups []Signup
	for rows.Next() {
		var sg Signup
		if err := rows.Scan(&sg.ID, &sg.Email, &sg.Name, &sg.CreatedAt); err != nil {
			return nil, err
		}
		signups = append(signups, sg)
	}
	return signups, rows.Err()
}

// DeleteSignup removes a signup by ID. Deleting a missing ID returns ErrNotFound.
func (s *Store) DeleteSignup(id string) error {
	res, err := s.db.Exec(`DELETE FROM signups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
