package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Minute), mr
}

func TestRedisStoreAppendAndHistory(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	err := store.Append(ctx, "s1",
		Turn{Role: "user", Content: "what is the travel policy?", CreatedAt: now},
		Turn{Role: "assistant", Content: "economy under 6 hours", CreatedAt: now},
	)
	assert.NoError(t, err)

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "what is the travel policy?", turns[0].Content)
	assert.Equal(t, "assistant", turns[1].Role)
	assert.True(t, turns[0].CreatedAt.Equal(now))
}

func TestRedisStoreAppendSetsTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "hello"}))
	assert.Greater(t, mr.TTL("chat:session:s1"), time.Duration(0))
}

func TestRedisStoreTTLSlides(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "first"}))
	mr.FastForward(30 * time.Second)
	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "second"}))

	// The second append refreshed the expiry back to the full TTL.
	assert.Equal(t, time.Minute, mr.TTL("chat:session:s1"))
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "hello"}))
	mr.FastForward(2 * time.Minute)

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRedisStoreClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "hello"}))
	assert.NoError(t, store.Clear(ctx, "s1"))

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestRedisStoreSkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "valid"}))
	mr.Lpush("chat:session:s1", "not json")

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, turns, 1)
	assert.Equal(t, "valid", turns[0].Content)
}
