package analytics

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists events in SQLite.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the analytics database at dbPath and loads the
// per-installation hashing salt, generating one on first use.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	db.SetMaxOpenConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.initSalt(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			visitor_id TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			device TEXT NOT NULL DEFAULT '',
			ts INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts);
		CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind, ts);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

func (s *Store) initSalt() error {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'hash_salt'`).Scan(&v)
	if err == nil {
		s.salt = v
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read hash salt: %w", err)
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	v = hex.EncodeToString(b)
	// Another process may have raced us; keep whichever salt landed first.
	if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('hash_salt', ?) ON CONFLICT(key) DO NOTHING`, v); err != nil {
		return fmt.Errorf("store hash salt: %w", err)
	}
	return s.db.QueryRow(`SELECT value FROM settings WHERE key = 'hash_salt'`).Scan(&s.salt)
}

// VisitorID returns the anonymous visitor ID for an IP and User-Agent.
func (s *Store) VisitorID(ip, userAgent string) string {
	return hashVisitor(s.salt, ip, userAgent)
}

// Record stores e. A zero Time means now.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (kind, detail, visitor_id, referrer, device, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		string(e.Kind), e.Detail, e.VisitorID, e.Referrer, e.Device, e.Time.UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", e.Kind, err)
	}
	return nil
}

// Summary aggregates events with from <= time < to.
func (s *Store) Summary(ctx context.Context, from, to time.Time) (Summary, error) {
	sum := Summary{From: from, To: to}
	lo, hi := from.UTC().Unix(), to.UTC().Unix()

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(kind = 'view'), 0),
			COUNT(DISTINCT CASE WHEN kind = 'view' THEN visitor_id END),
			COALESCE(SUM(kind = 'signup'), 0)
		FROM events WHERE ts >= ? AND ts < ?`, lo, hi,
	).Scan(&sum.Views, &sum.Visitors, &sum.Signups)
	if err != nil {
		return sum, fmt.Errorf("summary totals: %w", err)
	}

	if sum.FAQOpens, err = s.breakdown(ctx, `SELECT detail, COUNT(*) FROM events
		WHERE kind = 'faq_open' AND ts >= ? AND ts < ?
		GROUP BY detail ORDER BY COUNT(*) DESC, detail`, lo, hi); err != nil {
		return sum, fmt.Errorf("faq opens: %w", err)
	}
	if sum.Referrers, err = s.breakdown(ctx, `SELECT referrer, COUNT(*) FROM events
		WHERE kind = 'view' AND ts >= ? AND ts < ?
		GROUP BY referrer ORDER BY COUNT(*) DESC, referrer LIMIT 10`, lo, hi); err != nil {
		return sum, fmt.Errorf("referrers: %w", err)
	}
	if sum.Devices, err = s.breakdown(ctx, `SELECT device, COUNT(DISTINCT visitor_id) FROM events
		WHERE kind = 'view' AND ts >= ? AND ts < ?
		GROUP BY device ORDER BY COUNT(DISTINCT visitor_id) DESC, device`, lo, hi); err != nil {
		return sum, fmt.Errorf("devices: %w", err)
	}
	return sum, nil
}

func (s *Store) breakdown(ctx context.Context, query string, args ...any) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Key, &c.N); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Cleanup deletes events older than retention and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC().Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup events: %w", err)
	}
	return res.RowsAffected()
}

// StartCleanupScheduler runs Cleanup every interval. Returns a stop function.
func (s *Store) StartCleanupScheduler(retention, interval time.Duration, logger *slog.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := s.Cleanup(context.Background(), retention)
				if err != nil {
					logger.Error("analytics cleanup failed", "err", err)
					continue
				}
				if n > 0 {
					logger.Debug("analytics cleanup", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}
