package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("после ошибки используется интервал повтора", func(t *testing.T) {
		var calls int32
		worker := NewInstance("test", 0, time.Hour, 10*time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			worker.Run(ctx, func(ctx context.Context) error {
				if atomic.AddInt32(&calls, 1) < 3 {
					return errors.New("сбой")
				}
				return nil
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 3 }, time.Second, 5*time.Millisecond)
		cancel()
		<-done
		require.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})
	t.Run("panic не останавливает задачу", func(t *testing.T) {
		var calls int32
		worker := NewInstance("test", 0, time.Hour, 10*time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go worker.Run(ctx, func(ctx context.Context) error {
			if atomic.AddInt32(&calls, 1) == 1 {
				panic("boom")
			}
			return nil
		})
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, time.Second, 5*time.Millisecond)
	})
}
