package flash

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the read-once behaviour every Store must have.
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	session := uuid.NewString()
	other := uuid.NewString()

	t.Run("empty queue", func(t *testing.T) {
		values, err := store.Consume(ctx, session, KeySuccess)
		require.NoError(t, err)
		assert.Nil(t, values)
	})

	t.Run("values come back in order and only once", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, session, KeyError, "first"))
		require.NoError(t, store.Add(ctx, session, KeyError, "second"))

		values, err := store.Consume(ctx, session, KeyError)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, values)

		values, err = store.Consume(ctx, session, KeyError)
		require.NoError(t, err)
		assert.Nil(t, values)
	})

	t.Run("keys and sessions are isolated", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, session, KeySuccess, "mine"))
		require.NoError(t, store.Add(ctx, session, KeyPeopleCountChange, "+1"))
		require.NoError(t, store.Add(ctx, other, KeySuccess, "theirs"))

		values, err := store.Consume(ctx, session, KeySuccess)
		require.NoError(t, err)
		assert.Equal(t, []string{"mine"}, values)

		values, err = store.Consume(ctx, session, KeyPeopleCountChange)
		require.NoError(t, err)
		assert.Equal(t, []string{"+1"}, values)

		values, err = store.Consume(ctx, other, KeySuccess)
		require.NoError(t, err)
		assert.Equal(t, []string{"theirs"}, values)
	})

	t.Run("concurrent consumers see a message once", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, session, KeySuccess, "once"))

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				values, err := store.Consume(ctx, session, KeySuccess)
				assert.NoError(t, err)
				mu.Lock()
				seen += len(values)
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, seen)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore(time.Minute))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Add(ctx, "s1", KeySuccess, "stale"))
	assert.Equal(t, 1, store.Len())

	now = now.Add(2 * time.Minute)

	values, err := store.Consume(ctx, "s1", KeySuccess)
	require.NoError(t, err)
	assert.Nil(t, values)
	assert.Equal(t, 0, store.Len())
}

// TestRedisStore needs a live Redis, e.g. TEST_REDIS_ADDR=localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis tests: TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	runStoreContract(t, NewRedisStore(client, time.Minute))
}

type failingStore struct{}

func (failingStore) Add(context.Context, string, string, string) error {
	return errors.New("store down")
}

func (failingStore) Consume(context.Context, string, string) ([]string, error) {
	return nil, errors.New("store down")
}

func TestFlash(t *testing.T) {
	ctx := context.Background()

	t.Run("bound to one session", func(t *testing.T) {
		store := NewMemoryStore(0)
		f := New(store, "abc", nil)
		assert.Equal(t, "abc", f.SessionID())

		f.Set(ctx, KeySuccess, "A new person moved into the garden: Ana")
		assert.Equal(t, []string{"A new person moved into the garden: Ana"}, f.Get(ctx, KeySuccess))
		assert.Nil(t, f.Get(ctx, KeySuccess))
	})

	t.Run("store failures are swallowed", func(t *testing.T) {
		f := New(failingStore{}, "abc", nil)
		f.Set(ctx, KeyError, "lost")
		assert.Nil(t, f.Get(ctx, KeyError))
	})

	t.Run("context round trip", func(t *testing.T) {
		f := New(NewMemoryStore(0), "abc", nil)
		assert.Same(t, f, FromContext(NewContext(ctx, f)))

		missing := FromContext(ctx)
		require.NotNil(t, missing)
		missing.Set(ctx, KeyError, "dropped")
		assert.Nil(t, missing.Get(ctx, KeyError))
	})
}
