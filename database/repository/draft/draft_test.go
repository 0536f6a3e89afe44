package draftRepo

import (
	"context"
	"testing"
	"time"

	"barbershop/database/kv"
	"barbershop/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVDraftRepo_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	repo := NewKVDraftRepo(kv.NewRedisStore(client), time.Hour)

	_, err := repo.Load(ctx, "s1", "sess")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	draft := models.BookingDraft{ShopID: "s1", Date: "2024-10-24"}
	require.NoError(t, repo.Save(ctx, "s1", "sess", draft))

	got, err := repo.Load(ctx, "s1", "sess")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-24", got.Date)

	// Drafts are scoped to their shop.
	_, err = repo.Load(ctx, "s2", "sess")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	require.NoError(t, repo.Delete(ctx, "s1", "sess"))
	_, err = repo.Load(ctx, "s1", "sess")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestKVDraftRepo_Expires(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	repo := NewKVDraftRepo(kv.NewRedisStore(client), time.Minute)

	require.NoError(t, repo.Save(ctx, "s1", "sess", models.BookingDraft{Time: "09:00"}))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Load(ctx, "s1", "sess")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
