// Package journal records vend attempts in SQLite.
//
// The journal is an audit trail of what the shell did. It is never read back
// into a machine, so machine state still starts fresh on every run. The
// default database lives in memory and disappears with the process; pass a
// file path to keep the trail.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Memory is the path of a process-private in-memory journal.
const Memory = ":memory:"

// OutcomeOK marks a successful vend.
const OutcomeOK = "ok"

// Entry is one purchase attempt.
type Entry struct {
	ID       string
	At       time.Time
	Product  string // requested name on failure, vended name on success
	Outcome  string // OutcomeOK or a failure reason
	Price    int    // charged price, zero on failure
	Tendered int    // balance at the time of the attempt
	Change   int    // dispensed value
	Coins    []string
}

// OK reports whether the entry is a successful vend.
func (e Entry) OK() bool { return e.Outcome == OutcomeOK }

// Summary aggregates the whole journal.
type Summary struct {
	Vends    int
	Failures int
	Revenue  int
}

// Store is a SQLite-backed journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the journal at path. An empty path or Memory opens
// an in-memory journal.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = Memory
	}
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS vend_journal (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	at TEXT NOT NULL,
	product TEXT NOT NULL,
	outcome TEXT NOT NULL,
	price INTEGER NOT NULL DEFAULT 0,
	tendered INTEGER NOT NULL DEFAULT 0,
	dispensed INTEGER NOT NULL DEFAULT 0,
	coins TEXT NOT NULL DEFAULT ''
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize journal schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends e. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if strings.TrimSpace(e.Outcome) == "" {
		return Entry{}, errors.New("record journal entry: outcome is required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}
	e.At = e.At.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vend_journal (id, at, product, outcome, price, tendered, dispensed, coins)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.At.Format(time.RFC3339Nano),
		e.Product,
		e.Outcome,
		e.Price,
		e.Tendered,
		e.Change,
		strings.Join(e.Coins, ","),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record journal entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, product, outcome, price, tendered, dispensed, coins
		 FROM vend_journal ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			at    string
			coins string
		)
		if err := rows.Scan(&e.ID, &at, &e.Product, &e.Outcome, &e.Price, &e.Tendered, &e.Change, &coins); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp %q: %w", at, err)
		}
		if coins != "" {
			e.Coins = strings.Split(coins, ",")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return out, nil
}

// Summary totals successful vends, failures and revenue.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
SELECT
	coalesce(sum(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
	coalesce(sum(CASE WHEN outcome = ? THEN 0 ELSE 1 END), 0),
	coalesce(sum(CASE WHEN outcome = ? THEN price ELSE 0 END), 0)
FROM vend_journal`, OutcomeOK, OutcomeOK, OutcomeOK).Scan(&sum.Vends, &sum.Failures, &sum.Revenue)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize journal: %w", err)
	}
	return sum, nil
}

// openDB opens a SQLite database. File databases get WAL mode and a busy
// timeout; an in-memory database is pinned to one connection because each
// connection would otherwise see its own empty database.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == Memory {
		db.SetMaxOpenConns(1)
		return db, nil
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}
