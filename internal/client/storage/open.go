package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gobarber/internal/filex"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend   string
	SQLiteDSN string
	RedisAddr string
	RedisDB   int
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		if isFilePath(opts.SQLiteDSN) {
			if err := filex.EnsureFileDir(opts.SQLiteDSN); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
		}
		return OpenSQLite(ctx, opts.SQLiteDSN)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisDB)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// isFilePath reports whether dsn names a plain database file rather than
// ":memory:" or a "file:" URI.
func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
