// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrBadName indicates an empty layer name.
	ErrBadName = errors.New("catalog: layer name is empty")

	// ErrNotFound indicates a name without a recorded layer.
	ErrNotFound = errors.New("catalog: layer not found")

	// ErrDuplicate indicates a Record for a name that is already recorded.
	ErrDuplicate = errors.New("catalog: layer already recorded")
)

// Prefix is prepended to names that do not start with a letter.
const Prefix = "AA_"

// Kind classifies recorded layers.
type Kind string

const (
	KindRaster   Kind = "raster"
	KindPolygons Kind = "polygons"
)

// Entry is one recorded output layer.
type Entry struct {
	Name      string
	Kind      Kind
	RunID     uuid.UUID
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS layers (
	name       TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	run_id     TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Catalog is safe for concurrent use.
type Catalog struct {
	db *sql.DB

	mu       sync.Mutex
	reserved map[string]struct{} // resolved but not yet recorded
}

// Open opens (or creates) the catalog database at path. Use ":memory:" for a
// throw-away catalog.
func Open(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: ping %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}

	return &Catalog{db: db, reserved: make(map[string]struct{})}, nil
}

// Close releases the database.
func (c *Catalog) Close() error { return c.db.Close() }

// Alphabetic prefixes name with Prefix unless its first character is a letter.
func Alphabetic(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsLetter(r) {
		return name
	}

	return Prefix + name
}

// Resolve returns the name under which a new layer called name should be
// stored and reserves it until Record is called for it.
func (c *Catalog) Resolve(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrBadName
	}
	base := Alphabetic(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := base
	for i := 1; ; i++ {
		taken, err := c.taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
		candidate = base + "_" + strconv.Itoa(i)
	}
	c.reserved[candidate] = struct{}{}

	return candidate, nil
}

// Release drops the reservation Resolve made for name, for layers that
// were never written. Recorded names are not affected.
func (c *Catalog) Release(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reserved, name)

	return nil
}

// taken reports whether name is reserved or recorded. Caller holds mu.
func (c *Catalog) taken(ctx context.Context, name string) (bool, error) {
	if _, ok := c.reserved[name]; ok {
		return true, nil
	}
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layers WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("catalog: lookup %s: %w", name, err)
	}

	return n > 0, nil
}

// Record stores e. A zero CreatedAt is set to the current time.
func (c *Catalog) Record(ctx context.Context, e Entry) error {
	if e.Name == "" {
		return ErrBadName
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layers WHERE name = ?`, e.Name).Scan(&n); err != nil {
		return fmt.Errorf("catalog: lookup %s: %w", e.Name, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.Name)
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO layers (name, kind, run_id, created_at) VALUES (?, ?, ?, ?)`,
		e.Name, string(e.Kind), e.RunID.String(), e.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("catalog: record %s: %w", e.Name, err)
	}
	delete(c.reserved, e.Name)

	return nil
}

// Lookup returns the entry recorded under name.
func (c *Catalog) Lookup(ctx context.Context, name string) (Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT name, kind, run_id, created_at FROM layers WHERE name = ?`, name)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return e, err
}

// Run returns the entries recorded by one run, oldest first.
func (c *Catalog) Run(ctx context.Context, runID uuid.UUID) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name, kind, run_id, created_at FROM layers WHERE run_id = ? ORDER BY created_at, name`,
		runID.String())
	if err != nil {
		return nil, fmt.Errorf("catalog: query run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: query run %s: %w", runID, err)
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e     Entry
		kind  string
		runID string
		nanos int64
	)
	if err := s.Scan(&e.Name, &kind, &runID, &nanos); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("catalog: scan entry: %w", err)
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: entry %s: bad run id: %w", e.Name, err)
	}
	e.Kind = Kind(kind)
	e.RunID = id
	e.CreatedAt = time.Unix(0, nanos)

	return e, nil
}
