package keylock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courierbot/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	l := keylock.New()
	var inside, maxInside atomic.Int32

	g, ctx := errgroup.WithContext(t.Context())
	for range 50 {
		g.Go(func() error {
			return l.Do(ctx, "order:2026-10-18#7", func(context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), maxInside.Load())
	assert.Equal(t, 0, l.Len())
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := keylock.New()

	unlockA, err := l.Lock(t.Context(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()

	assert.Equal(t, 1, l.Len())
}

func TestLocker_TimeoutLeavesNoEntry(t *testing.T) {
	l := keylock.New()
	unlock, err := l.Lock(t.Context(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Len())

	unlock()
	unlock()
	assert.Equal(t, 0, l.Len())
}

func TestLocker_ReleasesOnErrorAndPanic(t *testing.T) {
	l := keylock.New()
	boom := errors.New("boom")

	err := l.Do(t.Context(), "k", func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, l.Len())

	assert.Panics(t, func() {
		_ = l.Do(t.Context(), "k", func(context.Context) error { panic("handler crashed") })
	})
	assert.Equal(t, 0, l.Len())

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	require.NoError(t, l.Do(ctx, "k", func(context.Context) error { return nil }))
}

func TestLocker_WaitersKeepEntryAlive(t *testing.T) {
	l := keylock.New()
	unlock, err := l.Lock(t.Context(), "k")
	require.NoError(t, err)

	var wg sync.WaitGroup
	acquired := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Do(t.Context(), "k", func(context.Context) error {
			close(acquired)
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		select {
		case <-acquired:
			return false
		default:
			return l.Len() == 1
		}
	}, time.Second, time.Millisecond)

	unlock()
	wg.Wait()
	<-acquired
	assert.Equal(t, 0, l.Len())
}
