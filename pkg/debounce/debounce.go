package debounce

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer delivers the trailing value of each burst of triggers to fn.
type Debouncer[T any] struct {
	fn        func(context.Context, T)
	afterFunc AfterFunc
	delay     time.Duration
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc

	mu      sync.Mutex
	timer   Timer
	value   T
	gen     uint64
	pending bool
	stopped bool

	runMu sync.Mutex
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	afterFunc AfterFunc
	logger    *slog.Logger
	ctx       context.Context
}

// WithClock replaces time.AfterFunc, mainly for tests.
func WithClock(af AfterFunc) Option {
	return func(o *options) {
		if af != nil {
			o.afterFunc = af
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithContext sets the parent context passed to fn. Stop cancels it.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// New creates a debouncer that calls fn delay after the last Trigger.
func New[T any](delay time.Duration, fn func(context.Context, T), opts ...Option) *Debouncer[T] {
	o := options{
		afterFunc: realAfterFunc,
		logger:    slog.New(slog.DiscardHandler),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(o.ctx)
	return &Debouncer[T]{
		fn:        fn,
		afterFunc: o.afterFunc,
		delay:     delay,
		logger:    o.logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Trigger records v as the pending value and restarts the delay.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending call now, if any, and waits for it to finish.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.mu.Unlock()

	d.fire(gen)
}

// Cancel drops the pending call without running it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.drop()
}

// Stop cancels the pending call and the context passed to fn. Later
// triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.drop()
	d.stopped = true
	d.mu.Unlock()

	d.cancel()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}

func (d *Debouncer[T]) drop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.pending {
		d.gen++
	}
	d.pending = false
	var zero T
	d.value = zero
}

// fire runs fn with the pending value if gen is still current.
func (d *Debouncer[T]) fire(gen uint64) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		d.logger.Debug("debounce: superseded call skipped", slog.Uint64("generation", gen))
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	var zero T
	d.value = zero
	d.mu.Unlock()

	d.fn(d.ctx, v)
}
