// Package export writes snapshots of resolved value resources to a SQLite
// database, so that two builds of an application can be compared with plain
// SQL.
//
//	store, err := export.Open("snapshot.db")
//	snap, err := export.FromEngine(engine, "com.example.app", "fr")
//	err = store.Write(ctx, snap)
//
// Every snapshot gets a fresh id; the engine instance id is kept alongside.
package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/resloader/pkg/res"
)

//go:embed schema.sql
var schema string

// Snapshot is the set of value resources one engine resolved.
type Snapshot struct {
	ID        uuid.UUID
	EngineID  uuid.UUID
	Package   string
	Locale    string
	CreatedAt time.Time
	Entries   []res.Entry
}

// Info describes a stored snapshot without its entries.
type Info struct {
	ID        uuid.UUID
	EngineID  uuid.UUID
	Package   string
	Locale    string
	CreatedAt time.Time
	Entries   int
}

// FromEngine resolves every value resource of e into a new snapshot.
func FromEngine(e *res.Engine, pkg, locale string) (Snapshot, error) {
	entries, err := e.Entries()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ID:        uuid.New(),
		EngineID:  e.ID(),
		Package:   pkg,
		Locale:    locale,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	}, nil
}

// Store is a SQLite snapshot database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path, creating it and its tables if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Write stores snap and its entries in one transaction.
func (s *Store) Write(ctx context.Context, snap Snapshot) (err error) {
	if snap.ID == uuid.Nil {
		return fmt.Errorf("snapshot id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, engine_id, package, locale, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID.String(), snap.EngineID.String(), snap.Package, snap.Locale, snap.CreatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (snapshot_id, type, res_id, name, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entries: %w", err)
	}
	defer stmt.Close()

	for _, e := range snap.Entries {
		if _, err = stmt.ExecContext(ctx, snap.ID.String(), e.Type, e.ID, e.Name, e.Value); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Snapshots lists the stored snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Info, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT s.id, s.engine_id, s.package, s.locale, s.created_at, COUNT(e.res_id)
		 FROM snapshots s LEFT JOIN entries e ON e.snapshot_id = s.id
		 GROUP BY s.id
		 ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var (
			info         Info
			id, engineID string
			createdAt    int64
		)
		if err := rows.Scan(&id, &engineID, &info.Package, &info.Locale, &createdAt, &info.Entries); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if info.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("snapshot id %q: %w", id, err)
		}
		if info.EngineID, err = uuid.Parse(engineID); err != nil {
			return nil, fmt.Errorf("engine id %q: %w", engineID, err)
		}
		info.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

// Entries returns the entries of snapshot id sorted by resource id. An
// unknown snapshot has no entries.
func (s *Store) Entries(ctx context.Context, id uuid.UUID) ([]res.Entry, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT type, res_id, name, value FROM entries WHERE snapshot_id = ? ORDER BY res_id, type`,
		id.String())
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []res.Entry
	for rows.Next() {
		var e res.Entry
		if err := rows.Scan(&e.Type, &e.ID, &e.Name, &e.Value); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
