package debounce_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpreview/pkg/debounce"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs due timers on the caller's goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type recorder struct {
	mu    sync.Mutex
	calls []int
}

func (r *recorder) fn(_ context.Context, v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) get() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls...)
}

func TestDebouncer_Burst(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	rec := &recorder{}
	d := debounce.New(500*time.Millisecond, rec.fn, debounce.WithClock(clock.AfterFunc))

	for i := 1; i <= 5; i++ {
		d.Trigger(i)
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, rec.get())
	assert.True(t, d.Pending())

	clock.Advance(399 * time.Millisecond)
	assert.Empty(t, rec.get())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []int{5}, rec.get())
	assert.False(t, d.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, []int{5}, rec.get())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	rec := &recorder{}
	d := debounce.New(500*time.Millisecond, rec.fn, debounce.WithClock(clock.AfterFunc))

	d.Trigger(1)
	clock.Advance(500 * time.Millisecond)
	d.Trigger(2)
	d.Trigger(3)
	clock.Advance(500 * time.Millisecond)

	assert.Equal(t, []int{1, 3}, rec.get())
}

func TestDebouncer_FlushCancelStop(t *testing.T) {
	t.Parallel()

	t.Run("flush runs pending call immediately", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{}
		rec := &recorder{}
		d := debounce.New(time.Second, rec.fn, debounce.WithClock(clock.AfterFunc))

		d.Flush()
		assert.Empty(t, rec.get())

		d.Trigger(7)
		d.Flush()
		assert.Equal(t, []int{7}, rec.get())

		clock.Advance(time.Second)
		assert.Equal(t, []int{7}, rec.get())
	})

	t.Run("cancel drops pending call", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{}
		rec := &recorder{}
		d := debounce.New(time.Second, rec.fn, debounce.WithClock(clock.AfterFunc))

		d.Trigger(1)
		d.Cancel()
		assert.False(t, d.Pending())
		clock.Advance(time.Second)
		assert.Empty(t, rec.get())

		d.Trigger(2)
		clock.Advance(time.Second)
		assert.Equal(t, []int{2}, rec.get())
	})

	t.Run("stop ignores later triggers and cancels context", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{}
		var gotCtx context.Context
		d := debounce.New(time.Second, func(ctx context.Context, _ int) { gotCtx = ctx }, debounce.WithClock(clock.AfterFunc))

		d.Trigger(1)
		d.Flush()
		require.NotNil(t, gotCtx)
		require.NoError(t, gotCtx.Err())

		d.Stop()
		assert.ErrorIs(t, gotCtx.Err(), context.Canceled)

		d.Trigger(2)
		assert.False(t, d.Pending())
	})
}

func TestDebouncer_RunsNeverOverlap(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	started := make(chan int, 2)
	release := make(chan struct{})
	var running, maxRunning atomic.Int32
	rec := &recorder{}

	d := debounce.New(500*time.Millisecond, func(ctx context.Context, v int) {
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		started <- v
		if v == 1 {
			<-release
		}
		rec.fn(ctx, v)
		running.Add(-1)
	}, debounce.WithClock(clock.AfterFunc))

	d.Trigger(1)
	go clock.Advance(500 * time.Millisecond)
	require.Equal(t, 1, <-started)

	d.Trigger(2)
	done := make(chan struct{})
	go func() {
		clock.Advance(500 * time.Millisecond)
		close(done)
	}()

	close(release)
	select {
	case v := <-started:
		assert.Equal(t, 2, v)
	case <-time.After(2 * time.Second):
		t.Fatal("trailing run did not start")
	}
	<-done

	assert.Equal(t, []int{1, 2}, rec.get())
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestDebouncer_RealClock(t *testing.T) {
	t.Parallel()

	got := make(chan int, 5)
	d := debounce.New(30*time.Millisecond, func(_ context.Context, v int) { got <- v })
	defer d.Stop()

	for i := 1; i <= 5; i++ {
		d.Trigger(i)
	}

	select {
	case v := <-got:
		assert.Equal(t, 5, v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call did not run")
	}

	select {
	case v := <-got:
		t.Fatalf("unexpected extra call with %d", v)
	case <-time.After(100 * time.Millisecond):
	}
}
