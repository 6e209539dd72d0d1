package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	n atomic.Int32
}

func (c *countingFetcher) Fetch() { c.n.Add(1) }

func TestRunRefresher_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &countingFetcher{}

	done := make(chan error, 1)
	go func() { done <- RunRefresher(ctx, f, 5*time.Millisecond) }()

	require.Eventually(t, func() bool { return f.n.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunRefresher did not return after cancel")
	}
}

func TestRunRefresher_DisabledNeverFetches(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	f := &countingFetcher{}

	require.NoError(t, RunRefresher(ctx, f, 0))
	assert.Zero(t, f.n.Load())
}
