package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gobarber/internal/client/migrations"
	"github.com/dmitrijs2005/gobarber/internal/dbx"

	_ "modernc.org/sqlite"
)

// SQLiteStorage stores entries in the kv table of a SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage wraps an already migrated database.
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// OpenSQLite opens dsn with the modernc driver and applies the embedded
// migrations. The pool is limited to one connection so ":memory:" databases
// keep their schema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %q: %w", ErrStorage, dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate sqlite %q: %w", ErrStorage, dsn, err)
	}
	return NewSQLiteStorage(db), nil
}

// RunMigrations brings db up to the latest embedded schema version.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStorage) MultiGet(ctx context.Context, keys []string) ([]Lookup, error) {
	if len(keys) == 0 {
		return []Lookup{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get items: %w", ErrStorage, err)
	}
	defer rows.Close()

	found := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: failed to scan item row: %w", ErrStorage, err)
		}
		found[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate item rows: %w", ErrStorage, err)
	}

	out := make([]Lookup, len(keys))
	for i, k := range keys {
		v, ok := found[k]
		out[i] = Lookup{Key: k, Value: v, Found: ok}
	}
	return out, nil
}

func (s *SQLiteStorage) MultiSet(ctx context.Context, pairs []Pair) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range pairs {
			if err := upsert(ctx, tx, p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to set items: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStorage) MultiRemove(ctx context.Context, keys []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return fmt.Errorf("delete item[%s]: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to remove items: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to get item[%s]: %w", ErrStorage, key, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) SetItem(ctx context.Context, key, value string) error {
	if err := upsert(ctx, s.db, key, value); err != nil {
		return fmt.Errorf("%w: failed to set item: %w", ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func upsert(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert item[%s]: %w", key, err)
	}
	return nil
}
