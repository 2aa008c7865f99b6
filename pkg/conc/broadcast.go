package conc

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type broadcastTarget[T any] struct {
	name string
	link *Link[T]
}

// Broadcast fans one producer out to many targets. Each dequeued item is
// cloned once per target and delivered through that target's own link, so
// every consumer sees producer order and mutation of one clone never
// reaches another consumer. Targets may come and go at runtime: Add and
// Remove swap an immutable snapshot of the target list under a short
// lock, and the hot dispatch loop only ever loads the snapshot.
type Broadcast[T any] struct {
	logger  *zap.Logger
	q       *Queue[T]
	clone   func(T) T
	targets atomic.Pointer[[]broadcastTarget[T]]
	mx      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped uint32
}

// NewBroadcast creates and starts the fan-out loop. clone must produce a
// field-complete copy.
func NewBroadcast[T any](logger *zap.Logger, clone func(T) T) *Broadcast[T] {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Broadcast[T]{
		logger: logger,
		q:      NewQueue[T](),
		clone:  clone,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	empty := make([]broadcastTarget[T], 0)
	b.targets.Store(&empty)
	go b.dispatch(ctx)
	return b
}

// Post hands one item to the fan-out. Never blocks the producer.
func (b *Broadcast[T]) Post(val T) {
	b.q.Push(val)
}

// Add registers a named target. A second target under the same name
// replaces the first. Adding to a stopped broadcast is a no-op.
func (b *Broadcast[T]) Add(name string, fn func(T)) {
	b.mx.Lock()
	defer b.mx.Unlock()
	if atomic.LoadUint32(&b.stopped) == 1 {
		return
	}
	old := *b.targets.Load()
	next := make([]broadcastTarget[T], 0, len(old)+1)
	for _, t := range old {
		if t.name == name {
			t.link.Stop()
			continue
		}
		next = append(next, t)
	}
	next = append(next, broadcastTarget[T]{name: name, link: NewLink[T](b.logger, fn)})
	b.targets.Store(&next)
}

// Remove drops a target and stops its link. Unknown names are a no-op.
func (b *Broadcast[T]) Remove(name string) {
	b.mx.Lock()
	defer b.mx.Unlock()
	old := *b.targets.Load()
	next := make([]broadcastTarget[T], 0, len(old))
	for _, t := range old {
		if t.name == name {
			t.link.Stop()
			continue
		}
		next = append(next, t)
	}
	b.targets.Store(&next)
}

// Stop cancels the dispatch loop and every target link. Idempotent.
func (b *Broadcast[T]) Stop() {
	if !atomic.CompareAndSwapUint32(&b.stopped, 0, 1) {
		return
	}
	b.cancel()
	b.mx.Lock()
	defer b.mx.Unlock()
	for _, t := range *b.targets.Load() {
		t.link.Stop()
	}
	empty := make([]broadcastTarget[T], 0)
	b.targets.Store(&empty)
}

// Done closes when the dispatch goroutine has exited.
func (b *Broadcast[T]) Done() <-chan struct{} {
	return b.done
}

func (b *Broadcast[T]) dispatch(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		val, ok := b.q.Pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		for _, t := range *b.targets.Load() {
			t.link.Post(b.clone(val))
		}
	}
}
