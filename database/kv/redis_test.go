package kv

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_JSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	type item struct {
		Name string `json:"name"`
	}
	require.NoError(t, SetJSON(ctx, s, "k", item{Name: "Ana"}, 0))

	var got item
	require.NoError(t, GetJSON(ctx, s, "k", &got))
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, s.Delete(ctx, "k"))
	assert.ErrorIs(t, GetJSON(ctx, s, "k", &got), ErrNotFound)
}

func TestRedisStore_AppendKeepsOrderAndTrims(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := AppendJSON(ctx, s, "list", i, 3)
		require.NoError(t, err)
	}

	got, err := RangeJSON[int](ctx, s, "list", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, got)

	n, err := s.Len(ctx, "list")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestRedisStore_SetNX(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.SetNX(ctx, "marker", []byte("1"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetNX(ctx, "marker", []byte("1"), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Members(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddMember(ctx, ShopsKey, "a"))
	require.NoError(t, s.AddMember(ctx, ShopsKey, "b"))
	require.NoError(t, s.AddMember(ctx, ShopsKey, "a"))

	members, err := s.Members(ctx, ShopsKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)
}

func TestRedisStore_Incr(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for want := int64(1); want <= 3; want++ {
		got, err := s.Incr(ctx, "seq")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
