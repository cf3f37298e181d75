package fire

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarrier_SettlesWhenHeldUnitLeaves(t *testing.T) {
	b := NewBarrier()
	assert.Equal(t, 1, b.Pending())

	b.Leave()

	select {
	case <-b.Done():
	default:
		t.Fatal("barrier should be settled")
	}
	assert.False(t, b.Enter(), "settled barrier must refuse new units")
}

func TestBarrier_WaitsForEveryUnit(t *testing.T) {
	b := NewBarrier()
	release := make(chan struct{})

	var mu sync.Mutex
	finished := 0
	for i := 0; i < 5; i++ {
		require.True(t, b.Go(func() {
			<-release
			mu.Lock()
			finished++
			mu.Unlock()
		}))
	}
	b.Leave()

	select {
	case <-b.Done():
		t.Fatal("barrier settled before units finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, b.Wait(context.Background()))
	assert.Equal(t, 5, finished)
}

func TestBarrier_ExternalRegistrationHoldsOpen(t *testing.T) {
	b := NewBarrier()
	require.True(t, b.Enter())
	b.Leave()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Wait(ctx), context.DeadlineExceeded)

	b.Leave()
	require.NoError(t, b.Wait(context.Background()))
}

func TestBarrier_ExtraLeaveIsIgnored(t *testing.T) {
	b := NewBarrier()
	b.Leave()
	b.Leave()
	assert.Equal(t, 0, b.Pending())
}
