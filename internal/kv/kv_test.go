package kv

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/startuphub/startuphub/internal/database"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared Get/Set/Delete contract against a backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "startupHub_user")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "startupHub_user", `{"id":1}`))
	v, found, err := s.Get(ctx, "startupHub_user")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"id":1}`, v)

	// overwrite
	require.NoError(t, s.Set(ctx, "startupHub_user", `{"id":2}`))
	v, _, err = s.Get(ctx, "startupHub_user")
	require.NoError(t, err)
	require.Equal(t, `{"id":2}`, v)

	require.NoError(t, s.Delete(ctx, "startupHub_user"))
	_, found, err = s.Get(ctx, "startupHub_user")
	require.NoError(t, err)
	require.False(t, found)

	// deleting an absent key is not an error
	require.NoError(t, s.Delete(ctx, "startupHub_missing"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)
	require.Equal(t, 0, s.Len())
}

func TestSQLiteStore(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	s, err := NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore_NilDB(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), nil)
	require.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := NewRedisStore(client, "test:")
	exerciseStore(t, s)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := NewRedisStore(client, "hub:")
	require.NoError(t, s.Set(context.Background(), "startupHub_theme", "light"))

	got, err := m.Get("hub:startupHub_theme")
	require.NoError(t, err)
	require.Equal(t, "light", got)
}

func TestRedisStore_BackendError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := NewRedisStore(client, "")
	m.Close()

	_, _, err = s.Get(context.Background(), "startupHub_user")
	require.Error(t, err)
}

func TestNewMinIOStore_MissingConfig(t *testing.T) {
	_, err := NewMinIOStore(context.Background(), MinIOConfig{})
	require.Error(t, err)

	_, err = NewMinIOStore(context.Background(), MinIOConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)
}

func TestMinIOStore_ObjectName(t *testing.T) {
	s := &MinIOStore{prefix: "state/"}
	require.Equal(t, "state/startupHub_likes.json", s.object("startupHub_likes"))
}
