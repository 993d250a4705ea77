package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStore_BeginPeekConsume(t *testing.T) {
	t.Parallel()
	clock := newClock()
	s := NewStore(WithClock(clock.Now))

	_, ok := s.Peek(1)
	assert.False(t, ok)

	sess := s.Begin(1, model.ImportSecret{Kind: model.ImportKindSeed})
	assert.Equal(t, int64(1), sess.UserID)
	assert.Equal(t, clock.Now(), sess.CreatedAt)

	got, ok := s.Peek(1)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	got, ok = s.Consume(1)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	_, ok = s.Consume(1)
	assert.False(t, ok, "second consume must find nothing")
	assert.Zero(t, s.Len())
}

func TestStore_BeginSupersedes(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Begin(7, model.ImportSecret{Kind: model.ImportKindSeed})
	s.Begin(7, model.AwaitTokenAddress{Side: model.TradeBuy})

	got, ok := s.Peek(7)
	require.True(t, ok)
	assert.Equal(t, model.AwaitTokenAddress{Side: model.TradeBuy}, got.Awaiting)
	assert.Equal(t, "buy_token_address", got.Awaiting.Name())
	assert.Equal(t, 1, s.Len())
}

func TestStore_UsersAreIndependent(t *testing.T) {
	t.Parallel()
	s := NewStore()

	s.Begin(1, model.ImportSecret{Kind: model.ImportKindSeed})
	s.Begin(2, model.AwaitTokenSymbol{})

	_, ok := s.Consume(1)
	require.True(t, ok)

	got, ok := s.Peek(2)
	require.True(t, ok)
	assert.Equal(t, "token_info", got.Awaiting.Name())
}

func TestStore_BeginNilAwaitPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		NewStore().Begin(1, nil)
	})
}

func TestStore_TTL(t *testing.T) {
	t.Parallel()
	clock := newClock()
	s := NewStore(WithTTL(5*time.Minute), WithClock(clock.Now))

	s.Begin(1, model.ImportSecret{Kind: model.ImportKindPrivate})
	clock.Advance(4 * time.Minute)
	_, ok := s.Peek(1)
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = s.Peek(1)
	assert.False(t, ok)
	_, ok = s.Consume(1)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestStore_NoTTLNeverExpires(t *testing.T) {
	t.Parallel()
	clock := newClock()
	s := NewStore(WithClock(clock.Now))

	s.Begin(1, model.ImportSecret{Kind: model.ImportKindSeed})
	clock.Advance(365 * 24 * time.Hour)

	_, ok := s.Peek(1)
	assert.True(t, ok)
	assert.Zero(t, s.Sweep())
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()
	clock := newClock()
	s := NewStore(WithTTL(time.Minute), WithClock(clock.Now))

	s.Begin(1, model.ImportSecret{Kind: model.ImportKindSeed})
	s.Begin(2, model.ImportSecret{Kind: model.ImportKindSeed})
	clock.Advance(30 * time.Second)
	s.Begin(3, model.AwaitTokenSymbol{})
	clock.Advance(45 * time.Second)

	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, ok := s.Peek(3)
	assert.True(t, ok)
}

func TestStore_RunSweeper(t *testing.T) {
	t.Parallel()
	clock := newClock()
	s := NewStore(WithTTL(time.Minute), WithClock(clock.Now))
	s.Begin(1, model.ImportSecret{Kind: model.ImportKindSeed})
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RunSweeper(ctx, 5*time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
	}()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	s := NewStore()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Begin(id%5, model.ImportSecret{Kind: model.ImportKindSeed})
			s.Peek(id % 5)
			s.Consume(id % 5)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 5)
}
