package mainloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := New(context.Background(), 4)
	defer l.Stop()

	var got []int
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Run(context.Background(), func() { got = append(got, i) }))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoop_SerializesConcurrentCallers(t *testing.T) {
	l := New(context.Background(), 0)
	defer l.Stop()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Run(context.Background(), func() { counter++ })
		}()
	}
	wg.Wait()

	var final int
	require.NoError(t, l.Run(context.Background(), func() { final = counter }))
	assert.Equal(t, 50, final)
}

func TestLoop_RejectsReentrantRun(t *testing.T) {
	l := New(context.Background(), 1)
	defer l.Stop()

	var nested error
	ctx := l.OnLoop(context.Background())
	require.NoError(t, l.Run(context.Background(), func() {
		nested = l.Run(ctx, func() {})
	}))
	assert.ErrorIs(t, nested, ErrReentrant)
}

func TestLoop_StopRejectsNewWork(t *testing.T) {
	l := New(context.Background(), 1)
	l.Stop()
	l.Stop()

	assert.ErrorIs(t, l.Run(context.Background(), func() {}), ErrStopped)
}

func TestLoop_RecoversPanickingTask(t *testing.T) {
	l := New(context.Background(), 1)
	defer l.Stop()

	require.NoError(t, l.Run(context.Background(), func() { panic("boom") }))

	ran := false
	require.NoError(t, l.Run(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_RunHonorsContextWhileWaiting(t *testing.T) {
	l := New(context.Background(), 1)
	defer l.Stop()

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = l.Run(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Run(ctx, func() {})
	close(release)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInline_RunsOnCaller(t *testing.T) {
	var in Inline
	ran := false
	require.NoError(t, in.Run(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, in.Run(ctx, func() {}), context.Canceled)
}
