package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postboard/postboard/internal/models"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	s := &models.Session{ID: "sid-1", UserID: "alice", DisplayName: "Alice A", CategoryFilter: "Food", ExpiresAt: time.Now().Add(time.Hour)}
	token, err := store.Save(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", token)
	assert.True(t, mr.Exists("session:sid-1"))

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Alice A", got.DisplayName)
	assert.Equal(t, "Food", got.CategoryFilter)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	_, err := store.Save(ctx, &models.Session{ID: "short", ExpiresAt: time.Now().Add(time.Minute)})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisStore_RejectsExpiredSave(t *testing.T) {
	store, _ := newRedisStore(t)
	_, err := store.Save(context.Background(), &models.Session{ID: "x", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, NewRedisStore(client).Ping(context.Background()))

	mr.Close()
	_, err = ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr(), Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
