package conc_test

import (
	"sync"
	"testing"
	"time"

	"gitlab.heather.loc/helios/momapi/pkg/conc"
	"go.uber.org/zap"
	"gotest.tools/assert"
)

func TestLink_Order(t *testing.T) {
	const total = 10000
	got := make([]int, 0, total)
	done := make(chan struct{})

	link := conc.NewLink(zap.NewNop(), func(val int) {
		got = append(got, val)
		if len(got) == total {
			close(done)
		}
	})
	defer link.Stop()

	for i := 0; i < total; i++ {
		link.Post(i)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("link did not deliver all items")
	}
	for i, val := range got {
		assert.Equal(t, val, i)
	}
}

func TestLink_ConsumerPanic(t *testing.T) {
	var mu sync.Mutex
	got := make([]int, 0, 2)
	done := make(chan struct{})

	link := conc.NewLink(zap.NewNop(), func(val int) {
		if val < 0 {
			panic("bad item")
		}
		mu.Lock()
		got = append(got, val)
		if len(got) == 2 {
			close(done)
		}
		mu.Unlock()
	})
	defer link.Stop()

	link.Post(1)
	link.Post(-1)
	link.Post(2)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("link stopped after consumer panic")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.DeepEqual(t, got, []int{1, 2})
}

func TestLink_StopIdempotent(t *testing.T) {
	link := conc.NewLink(zap.NewNop(), func(int) {})

	link.Stop()
	link.Stop()

	select {
	case <-link.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("drain goroutine did not exit")
	}
}

func TestLink_StopFromCallback(t *testing.T) {
	var link *conc.Link[int]
	link = conc.NewLink(zap.NewNop(), func(int) {
		link.Stop()
	})
	link.Post(1)

	select {
	case <-link.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stop from callback deadlocked")
	}
}
