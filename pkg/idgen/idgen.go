// Package idgen provides monotonic 64-bit id sources used to correlate
// outbound requests and orders. Three strategies trade uniqueness
// guarantees against throughput; none survives a process restart unless
// the composite base is coordinated externally.
package idgen

import (
	"sync"
	"sync/atomic"
	"time"
)

// Generator produces ids distinct from all previously produced ids of the
// same instance.
type Generator interface {
	Next() int64
}

// TickUnique issues real clock ticks: each id is a nanosecond timestamp
// strictly greater than the last issued one. The generator spins until
// the clock advances, so throughput is bounded by clock resolution. Use
// it only when ids must be real timestamps.
type TickUnique struct {
	mu   sync.Mutex
	last int64
}

func NewTickUnique() *TickUnique {
	return &TickUnique{}
}

func (g *TickUnique) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		tick := time.Now().UnixNano()
		if tick > g.last {
			g.last = tick
			return tick
		}
	}
}

// AtomicTick seeds a counter from the current clock tick and increments
// atomically. The default choice: one atomic add per id, and the seed
// keeps ids from colliding with a previous run in practice.
type AtomicTick struct {
	last int64
}

func NewAtomicTick() *AtomicTick {
	return &AtomicTick{last: time.Now().UnixNano()}
}

func (g *AtomicTick) Next() int64 {
	return atomic.AddInt64(&g.last, 1)
}

// Composite packs a fixed base into the high half of the id and an atomic
// series counter into the low half. No clock dependency; per-instance
// uniqueness holds as long as the series does not overflow 32 bits.
type Composite struct {
	base   int64
	series int64
}

func NewComposite(base int32) *Composite {
	return &Composite{base: int64(base) << 32}
}

func (g *Composite) Next() int64 {
	return g.base | (atomic.AddInt64(&g.series, 1) & 0xffffffff)
}
