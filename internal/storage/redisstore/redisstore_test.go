package redisstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsite/site-api/internal/storage"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisStore_ReadWrite(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := New(client, "site:")
	ctx := context.Background()

	_, err := s.Read(ctx, "data/calendar.json")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Write(ctx, "data/calendar.json", []byte(`{"events":[]}`)))
	got, err := mr.Get("site:data/calendar.json")
	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, got)

	data, err := s.Read(ctx, "data/calendar.json")
	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, string(data))
	assert.False(t, mr.Exists("data/calendar.json"))
}

func TestRedisStore_ListAndDelete(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := New(client, "site:")
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "resources/cs101/b.pdf", []byte("bbb")))
	require.NoError(t, s.Write(ctx, "resources/cs101/a.pdf", []byte("a")))
	require.NoError(t, s.Write(ctx, "data/team.json", []byte("{}")))

	objs, err := s.List(ctx, "resources/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "resources/cs101/a.pdf", objs[0].Name)
	assert.Equal(t, int64(3), objs[1].Size)

	require.NoError(t, s.Delete(ctx, "resources/cs101/a.pdf"))
	require.NoError(t, s.Delete(ctx, "resources/cs101/a.pdf"))
	objs, err = s.List(ctx, "resources/")
	require.NoError(t, err)
	assert.Len(t, objs, 1)
}

func TestRedisStore_ListPrefixWithGlobCharacters(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := New(client, "site:")
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "resources/lab[1]/notes.pdf", []byte("n")))
	require.NoError(t, s.Write(ctx, "resources/lab1/other.pdf", []byte("o")))
	require.NoError(t, s.Write(ctx, "resources/what?/a*.pdf", []byte("q")))
	require.NoError(t, s.Write(ctx, "resources/whatX/b.pdf", []byte("x")))

	objs, err := s.List(ctx, "resources/lab[1]/")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "resources/lab[1]/notes.pdf", objs[0].Name)

	objs, err = s.List(ctx, "resources/what?/")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "resources/what?/a*.pdf", objs[0].Name)
}

func TestRedisStore_UnavailableWhenServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	s := New(client, "site:")
	mr.Close()

	_, err = s.Read(context.Background(), "data/team.json")
	assert.True(t, errors.Is(err, storage.ErrUnavailable))
	assert.Error(t, s.Ping(context.Background()))
}
