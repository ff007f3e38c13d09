// internal/store/redis_test.go
package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	blob := []byte(`{"applications":[]}`)
	require.NoError(t, s.Save(ctx, KeyApplications, blob))

	got, err := s.Load(ctx, KeyApplications)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestRedisStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	require.NoError(t, s.Save(ctx, KeyOnboardingComplete, []byte("false")))
	require.NoError(t, s.Save(ctx, KeyOnboardingComplete, []byte("true")))

	got, err := s.Load(ctx, KeyOnboardingComplete)
	require.NoError(t, err)
	assert.Equal(t, []byte("true"), got)
}

func TestRedisStore_LoadMissingKey(t *testing.T) {
	s, _ := newTestRedisStore(t)

	_, err := s.Load(context.Background(), KeyUserProfile)
	assert.Equal(t, ErrNotFound, err)
}

func TestRedisStore_SavedBlobsDoNotExpire(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	require.NoError(t, s.Save(ctx, KeyApplications, []byte("{}")))
	assert.Zero(t, mr.TTL(KeyApplications))
}

func TestRedisStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)

	require.NoError(t, s.Save(ctx, KeyUserProfile, []byte(`{"name":"Asha"}`)))
	require.NoError(t, s.Delete(ctx, KeyUserProfile))

	_, err := s.Load(ctx, KeyUserProfile)
	assert.Equal(t, ErrNotFound, err)

	// deleting a key that is already gone is not an error
	assert.NoError(t, s.Delete(ctx, KeyUserProfile))
}

func TestRedisStore_Ping(t *testing.T) {
	s, mr := newTestRedisStore(t)

	assert.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
