package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { c.Close() })
	return NewRedisRepository(c, DefaultRedisPrefix), mr
}

func TestRedis_SetGetUsesPrefix(t *testing.T) {
	r, mr := newTestRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "authUser", []byte(`{"userId":1}`)))

	v, err := r.Get(ctx, "authUser")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"userId":1}`), v)

	got, err := mr.Get("mybank:authUser")
	require.NoError(t, err)
	assert.Equal(t, `{"userId":1}`, got)
}

func TestRedis_GetAbsentReturnsNilNil(t *testing.T) {
	r, _ := newTestRedisRepository(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_ListAndClearIgnoreForeignKeys(t *testing.T) {
	r, mr := newTestRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:key", "x"))
	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.True(t, mr.Exists("other:key"))

	require.NoError(t, r.Clear(ctx))
}

func TestRedis_Delete(t *testing.T) {
	r, _ := newTestRedisRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte("1")))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedis_Update(t *testing.T) {
	r, _ := newTestRedisRepository(t)
	ctx := context.Background()

	var seen [][]byte
	fn := func(suffix string) UpdateFunc {
		return func(old []byte) ([]byte, error) {
			seen = append(seen, old)
			return append(append([]byte{}, old...), suffix...), nil
		}
	}

	require.NoError(t, r.Update(ctx, "log", fn("a")))
	require.NoError(t, r.Update(ctx, "log", fn("b")))

	assert.Nil(t, seen[0])
	assert.Equal(t, []byte("a"), seen[1])

	v, err := r.Get(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), v)
}

func TestRedis_UpdateErrorLeavesValue(t *testing.T) {
	r, _ := newTestRedisRepository(t)
	ctx := context.Background()
	boom := errors.New("boom")

	require.NoError(t, r.Set(ctx, "k", []byte("keep")))
	err := r.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
}

func TestRedis_ErrorsWhenServerDown(t *testing.T) {
	r, mr := newTestRedisRepository(t)
	ctx := context.Background()
	mr.Close()

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewRedisClient(ctx, "")
	require.Error(t, err)

	_, err = NewRedisClient(ctx, "not a url")
	require.ErrorContains(t, err, "parse redis url")

	mr := miniredis.RunT(t)
	c, err := NewRedisClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, c.Close())
}
