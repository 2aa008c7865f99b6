package conc_test

import (
	"sync"
	"testing"

	"gitlab.heather.loc/helios/momapi/pkg/conc"
	"gotest.tools/assert"
)

func TestQueue_FIFO(t *testing.T) {
	q := conc.NewQueue[int]()

	_, ok := q.Pop()
	assert.Assert(t, !ok)

	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	for i := 0; i < 100; i++ {
		val, ok := q.Pop()
		assert.Assert(t, ok)
		assert.Equal(t, val, i)
	}
	_, ok = q.Pop()
	assert.Assert(t, !ok)
}

func TestQueue_ProducerConsumer(t *testing.T) {
	q := conc.NewQueue[int]()
	const total = 100000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			q.Push(i)
		}
	}()

	next := 0
	for next < total {
		val, ok := q.Pop()
		if !ok {
			continue
		}
		assert.Equal(t, val, next)
		next++
	}
	wg.Wait()
}
