package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", Entry{Code: 111111, ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Put(ctx, "a@b.com", Entry{Code: 222222, ExpiresAt: time.Now().Add(time.Minute)}))

	e, found, err := store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 222222, e.Code)
}

func TestMemoryStore_ClaimIfMatch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", Entry{Code: 123456, ExpiresAt: time.Now().Add(time.Minute)}))

	res, err := store.ClaimIfMatch(ctx, "a@b.com", 654321)
	require.NoError(t, err)
	assert.Equal(t, ResultMismatch, res)

	// A mismatch must not consume the entry.
	res, err = store.ClaimIfMatch(ctx, "a@b.com", 123456)
	require.NoError(t, err)
	assert.Equal(t, ResultMatched, res)

	res, err = store.ClaimIfMatch(ctx, "a@b.com", 123456)
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, res)
}

func TestMemoryStore_ConcurrentClaimsConsumeOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a@b.com", Entry{Code: 123456, ExpiresAt: time.Now().Add(time.Minute)}))

	const attempts = 32
	results := make([]Result, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := store.ClaimIfMatch(ctx, "a@b.com", 123456)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	matched := 0
	for _, res := range results {
		if res == ResultMatched {
			matched++
		}
	}
	assert.Equal(t, 1, matched, "exactly one claim may win")
}
