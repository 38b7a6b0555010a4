package tasks

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackgroundTasks(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("runs queued tasks", func(t *testing.T) {
		executor := New(log, 2, 10)
		executor.Run()

		var done atomic.Int32
		for i := 0; i < 5; i++ {
			executor.Add(func() { done.Add(1) })
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, executor.Shutdown(ctx))
		assert.Equal(t, int32(5), done.Load())
	})

	t.Run("shutdown drains the queue", func(t *testing.T) {
		executor := New(log, 1, 10)
		executor.Run()

		var done atomic.Int32
		executor.Add(func() {
			time.Sleep(10 * time.Millisecond)
			done.Add(1)
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, executor.Shutdown(ctx))
		assert.Equal(t, int32(1), done.Load())
		assert.True(t, executor.IsEmpty())
	})

	t.Run("a panicking task is recovered", func(t *testing.T) {
		executor := New(log, 1, 10)
		executor.Run()
		executor.Add(func() { panic("boom") })

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, executor.Shutdown(ctx))
	})
}
