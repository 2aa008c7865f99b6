package conc

import (
	"context"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
)

// Link drains an SPSC queue on a dedicated goroutine and invokes a target
// callback per item, preserving producer order. The drain loop yields the
// processor between empty polls instead of blocking on a condition
// variable, which keeps hand-off latency low at the cost of CPU.
type Link[T any] struct {
	logger  *zap.Logger
	q       *Queue[T]
	fn      func(T)
	core    int
	cancel  context.CancelFunc
	done    chan struct{}
	stopped uint32
}

// LinkOption tunes a link at construction time.
type LinkOption func(*linkConfig)

type linkConfig struct {
	core int
}

// WithCore pins the drain thread to a logical CPU. Reserve it for
// latency-sensitive order-routing paths.
func WithCore(core int) LinkOption {
	return func(cfg *linkConfig) {
		cfg.core = core
	}
}

// NewLink creates and starts the drain loop.
func NewLink[T any](logger *zap.Logger, fn func(T), opts ...LinkOption) *Link[T] {
	cfg := linkConfig{core: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel := context.WithCancel(context.Background())
	link := &Link[T]{
		logger: logger,
		q:      NewQueue[T](),
		fn:     fn,
		core:   cfg.core,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go link.drain(ctx)
	return link
}

// Post hands one item to the link. Never blocks the producer.
func (l *Link[T]) Post(val T) {
	l.q.Push(val)
}

// Stop cancels the drain loop. Idempotent and safe to call from inside
// the link's own callback: it does not wait for the loop to exit.
func (l *Link[T]) Stop() {
	if atomic.CompareAndSwapUint32(&l.stopped, 0, 1) {
		l.cancel()
	}
}

// Done closes when the drain goroutine has exited.
func (l *Link[T]) Done() <-chan struct{} {
	return l.done
}

func (l *Link[T]) drain(ctx context.Context) {
	defer close(l.done)
	if l.core >= 0 {
		runtime.LockOSThread()
		setAffinity(l.core)
		defer runtime.UnlockOSThread()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		val, ok := l.q.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		l.invoke(val)
	}
}

// invoke shields the drain loop from consumer panics: one bad consumer
// must not stop delivery.
func (l *Link[T]) invoke(val T) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("conc: consumer panic", zap.Any("panic", r))
		}
	}()
	l.fn(val)
}
