package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	err := store.Append(ctx, "s1",
		Turn{Role: "user", Content: "hello"},
		Turn{Role: "assistant", Content: "hi"},
	)
	assert.NoError(t, err)

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "hi", turns[1].Content)
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	assert.NoError(t, store.Append(ctx, "a", Turn{Role: "user", Content: "question a"}))
	assert.NoError(t, store.Append(ctx, "b", Turn{Role: "user", Content: "question b"}))

	turns, err := store.History(ctx, "a")
	assert.NoError(t, err)
	assert.Len(t, turns, 1)
	assert.Equal(t, "question a", turns[0].Content)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	turns, err := store.History(context.Background(), "never-seen")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "hello"}))
	time.Sleep(20 * time.Millisecond)

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestMemoryStoreSweepsExpiredOnAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	// Sessions that are never read again must not linger once expired.
	assert.NoError(t, store.Append(ctx, "stale-1", Turn{Role: "user", Content: "hello"}))
	assert.NoError(t, store.Append(ctx, "stale-2", Turn{Role: "user", Content: "hello"}))
	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, store.Append(ctx, "fresh", Turn{Role: "user", Content: "hello"}))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.sessions, 1)
	assert.Contains(t, store.sessions, "fresh")
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	assert.NoError(t, store.Append(ctx, "s1", Turn{Role: "user", Content: "hello"}))
	assert.NoError(t, store.Clear(ctx, "s1"))

	turns, err := store.History(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}
