package conc_test

import (
	"sync"
	"testing"
	"time"

	"gitlab.heather.loc/helios/momapi/pkg/conc"
	"go.uber.org/zap"
	"gotest.tools/assert"
)

type depthStub struct {
	seq    int
	volume float64
}

func cloneDepthStub(d *depthStub) *depthStub {
	cp := *d
	return &cp
}

type depthCollector struct {
	mu   sync.Mutex
	got  []*depthStub
	done chan struct{}
	want int
}

func newDepthCollector(want int) *depthCollector {
	return &depthCollector{done: make(chan struct{}), want: want}
}

func (c *depthCollector) consume(d *depthStub) {
	c.mu.Lock()
	c.got = append(c.got, d)
	if len(c.got) == c.want {
		close(c.done)
	}
	c.mu.Unlock()
}

func (c *depthCollector) wait(t *testing.T) []*depthStub {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not receive all items")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.got
}

func TestBroadcast_AllConsumersInOrder(t *testing.T) {
	const total = 1000
	b := conc.NewBroadcast(zap.NewNop(), cloneDepthStub)
	defer b.Stop()

	first := newDepthCollector(total)
	second := newDepthCollector(total)
	b.Add("first", first.consume)
	b.Add("second", second.consume)

	for i := 0; i < total; i++ {
		b.Post(&depthStub{seq: i})
	}

	for _, got := range [][]*depthStub{first.wait(t), second.wait(t)} {
		for i, d := range got {
			assert.Equal(t, d.seq, i)
		}
	}
}

func TestBroadcast_CloneIsolation(t *testing.T) {
	b := conc.NewBroadcast(zap.NewNop(), cloneDepthStub)
	defer b.Stop()

	second := newDepthCollector(1)
	// the first consumer mutates its copy before the second reads
	b.Add("mutator", func(d *depthStub) {
		d.volume = -1
	})
	b.Add("reader", second.consume)

	src := &depthStub{seq: 1, volume: 100}
	b.Post(src)

	got := second.wait(t)
	assert.Equal(t, got[0].volume, 100.0)
	assert.Equal(t, src.volume, 100.0)
}

func TestBroadcast_AddReplacesAndRemove(t *testing.T) {
	b := conc.NewBroadcast(zap.NewNop(), cloneDepthStub)
	defer b.Stop()

	replaced := newDepthCollector(1)
	current := newDepthCollector(1)
	b.Add("target", replaced.consume)
	b.Add("target", current.consume)

	b.Post(&depthStub{seq: 1})
	current.wait(t)

	b.Remove("target")
	b.Post(&depthStub{seq: 2})

	time.Sleep(50 * time.Millisecond)
	current.mu.Lock()
	assert.Equal(t, len(current.got), 1)
	current.mu.Unlock()
	replaced.mu.Lock()
	assert.Equal(t, len(replaced.got), 0)
	replaced.mu.Unlock()
}

func TestBroadcast_StopIdempotent(t *testing.T) {
	b := conc.NewBroadcast(zap.NewNop(), cloneDepthStub)
	b.Add("target", func(*depthStub) {})

	b.Stop()
	b.Stop()

	select {
	case <-b.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch goroutine did not exit")
	}
}
