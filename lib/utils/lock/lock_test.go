package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run("runs code and releases key", func(t *testing.T) {
		called := false
		ok, err := WithDelay(context.Background(), "jr-1", time.Second, func() error {
			called = true
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, called)
		_, loaded := lockMap.Load("jr-1")
		require.False(t, loaded)
	})
	t.Run("returns code error", func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "jr-2", time.Second, func() error {
			return errors.New("boom")
		})
		require.True(t, ok)
		require.EqualError(t, err, "boom")
	})
	t.Run("times out on busy key", func(t *testing.T) {
		lockMap.Store("jr-3", true)
		defer lockMap.Delete("jr-3")
		err := Do(context.Background(), "jr-3", 100*time.Millisecond, func() error {
			t.Fatal("must not run")
			return nil
		})
		require.ErrorIs(t, err, ErrLockTimeout)
	})
}

func TestWithDelaySerializes(t *testing.T) {
	var active, maxActive int32
	wg := sync.WaitGroup{}
	for n := 0; n < 5; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Do(context.Background(), "jr-serial", 5*time.Second, func() error {
				cur := atomic.AddInt32(&active, 1)
				for {
					prev := atomic.LoadInt32(&maxActive)
					if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), maxActive)
}
