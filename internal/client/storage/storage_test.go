package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T) Storage

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		"memory": func(t *testing.T) Storage {
			return NewMemoryStorage()
		},
		"sqlite": func(t *testing.T) Storage {
			s, err := OpenSQLite(context.Background(), ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"redis": func(t *testing.T) Storage {
			mr := miniredis.RunT(t)
			rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			s := NewRedisStorage(rdb)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStorage_MultiSetThenMultiGet_PreservesOrder(t *testing.T) {
	for name, newStorage := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t)
			ctx := context.Background()

			require.NoError(t, s.MultiSet(ctx, []Pair{
				{Key: "@App:token", Value: "123token"},
				{Key: "@App:user", Value: `{"id":"123user"}`},
			}))

			got, err := s.MultiGet(ctx, []string{"@App:user", "@App:missing", "@App:token"})
			require.NoError(t, err)
			assert.Equal(t, []Lookup{
				{Key: "@App:user", Value: `{"id":"123user"}`, Found: true},
				{Key: "@App:missing"},
				{Key: "@App:token", Value: "123token", Found: true},
			}, got)
		})
	}
}

func TestStorage_MultiGet_EmptyKeys(t *testing.T) {
	for name, newStorage := range backends() {
		t.Run(name, func(t *testing.T) {
			got, err := newStorage(t).MultiGet(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStorage_SetItemOverwrites(t *testing.T) {
	for name, newStorage := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t)
			ctx := context.Background()

			require.NoError(t, s.SetItem(ctx, "k", "old"))
			require.NoError(t, s.SetItem(ctx, "k", "new"))

			v, found, err := s.GetItem(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "new", v)
		})
	}
}

func TestStorage_GetItem_Missing(t *testing.T) {
	for name, newStorage := range backends() {
		t.Run(name, func(t *testing.T) {
			v, found, err := newStorage(t).GetItem(context.Background(), "absent")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, v)
		})
	}
}

func TestStorage_MultiRemove_IsIdempotent(t *testing.T) {
	for name, newStorage := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t)
			ctx := context.Background()

			require.NoError(t, s.MultiSet(ctx, []Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"}}))
			require.NoError(t, s.MultiRemove(ctx, []string{"a", "b"}))
			require.NoError(t, s.MultiRemove(ctx, []string{"a", "b"}))

			got, err := s.MultiGet(ctx, []string{"a", "b", "c"})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"c": "3"}, Values(got))
		})
	}
}

func TestMemoryStorage_ClosedRejectsCalls(t *testing.T) {
	s := NewMemoryStorage()
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, err := s.MultiGet(ctx, []string{"a"})
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.MultiSet(ctx, []Pair{{Key: "a", Value: "1"}}), ErrClosed)
	require.ErrorIs(t, s.MultiRemove(ctx, []string{"a"}), ErrClosed)
	require.ErrorIs(t, s.SetItem(ctx, "a", "1"), ErrClosed)
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStorage().MultiGet(ctx, []string{"a"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, SQLiteDSN: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	s, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStorage{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = OpenRedis(context.Background(), addr, 0)
	require.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "session.db")

	s, err := Open(context.Background(), Options{Backend: BackendSQLite, SQLiteDSN: dsn})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(dsn)
	require.NoError(t, err)
}

func TestIsFilePath(t *testing.T) {
	assert.True(t, isFilePath("data/session.db"))
	assert.False(t, isFilePath(":memory:"))
	assert.False(t, isFilePath("file:test?mode=memory"))
	assert.False(t, isFilePath(""))
}
