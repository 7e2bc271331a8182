// Package sqlite persists notes and categories in a single SQLite database,
// optionally encrypted with SQLCipher. Saves replace the whole table in one
// transaction so the database always holds a complete snapshot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/noteblue/noteblue/internal/storage"
)

const (
	// DBName is the database filename inside the data directory.
	DBName = "noteblue.db"

	// maxOpenConns stays low: SQLite is single-writer and this store is
	// only ever written by one process.
	maxOpenConns = 2
	maxIdleConns = 1
)

// Schema creates the notes, categories, and meta tables.
// The meta table records whether categories were ever saved, so an
// explicitly emptied category list is not confused with "never stored".
const Schema = `
CREATE TABLE IF NOT EXISTS notes (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    category   TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    position INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const categoriesSavedKey = "categories_saved"

// Adapter stores collections in one SQLite database file.
type Adapter struct {
	db *sql.DB
}

var _ storage.Adapter = (*Adapter)(nil)

// Open opens (creating if needed) the database under dir. A non-empty key
// enables SQLCipher encryption; losing the key makes the file unreadable.
func Open(dir, key string) (*Adapter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := appendParams(filepath.Join(dir, DBName), commonParams())
	if key != "" {
		dsn = appendParams(dsn, "_pragma_key="+key)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Adapter{db: db}, nil
}

// Close closes the database connection.
func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// LoadNotes returns all stored notes.
func (a *Adapter) LoadNotes(ctx context.Context) ([]storage.NoteRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, title, content, category, created_at, updated_at FROM notes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []storage.NoteRecord{}
	for rows.Next() {
		var rec storage.NoteRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Content, &rec.Category, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for note %s: %w", rec.ID, err)
		}
		if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at for note %s: %w", rec.ID, err)
		}
		notes = append(notes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// LoadCategories returns stored categories in insertion order, or the
// default set when categories were never saved.
func (a *Adapter) LoadCategories(ctx context.Context) ([]string, error) {
	var saved string
	err := a.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, categoriesSavedKey).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.DefaultCategories(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query meta: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// SaveNotes replaces the notes table with the given snapshot.
func (a *Adapter) SaveNotes(ctx context.Context, notes []storage.NoteRecord) error {
	return a.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
			return fmt.Errorf("clear notes: %w", err)
		}
		for _, rec := range notes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO notes (id, title, content, category, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				rec.ID, rec.Title, rec.Content, rec.Category,
				rec.CreatedAt.UTC().Format(time.RFC3339Nano),
				rec.UpdatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("insert note %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

// SaveCategories replaces the categories table with the given snapshot.
func (a *Adapter) SaveCategories(ctx context.Context, categories []string) error {
	return a.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		for _, name := range categories {
			if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name); err != nil {
				return fmt.Errorf("insert category %q: %w", name, err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO meta (key, value) VALUES (?, '1')
			 ON CONFLICT(key) DO UPDATE SET value = '1'`, categoriesSavedKey)
		if err != nil {
			return fmt.Errorf("mark categories saved: %w", err)
		}
		return nil
	})
}

// ClearAll removes all persisted notes, categories, and metadata.
func (a *Adapter) ClearAll(ctx context.Context) error {
	return a.inTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM notes`,
			`DELETE FROM categories`,
			`DELETE FROM meta`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
		}
		return nil
	})
}

func (a *Adapter) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func commonParams() string {
	// WAL + NORMAL provides good throughput while preserving safety.
	return "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"
}

func appendParams(dsn, params string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}
