package idgen_test

import (
	"sync"
	"testing"

	"gitlab.heather.loc/helios/momapi/pkg/idgen"
	"gotest.tools/assert"
)

func collectConcurrent(t *testing.T, gen idgen.Generator, workers, perWorker int) map[int64]bool {
	t.Helper()
	var mu sync.Mutex
	seen := make(map[int64]bool, workers*perWorker)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			ids := make([]int64, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				ids = append(ids, gen.Next())
			}
			mu.Lock()
			for _, id := range ids {
				assert.Assert(t, !seen[id], "duplicate id %d", id)
				seen[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return seen
}

func TestTickUnique_Monotonic(t *testing.T) {
	gen := idgen.NewTickUnique()
	prev := gen.Next()
	for i := 0; i < 1000; i++ {
		next := gen.Next()
		assert.Assert(t, next > prev, "id %d not above %d", next, prev)
		prev = next
	}
}

func TestTickUnique_Concurrent(t *testing.T) {
	collectConcurrent(t, idgen.NewTickUnique(), 4, 200)
}

func TestAtomicTick_Concurrent(t *testing.T) {
	seen := collectConcurrent(t, idgen.NewAtomicTick(), 8, 1000)
	assert.Equal(t, len(seen), 8*1000)
}

func TestComposite_Layout(t *testing.T) {
	gen := idgen.NewComposite(7)

	first := gen.Next()
	assert.Equal(t, first>>32, int64(7))
	assert.Equal(t, first&0xffffffff, int64(1))

	second := gen.Next()
	assert.Equal(t, second&0xffffffff, int64(2))
}

func TestComposite_Concurrent(t *testing.T) {
	seen := collectConcurrent(t, idgen.NewComposite(42), 8, 1000)
	assert.Equal(t, len(seen), 8*1000)
	for id := range seen {
		assert.Equal(t, id>>32, int64(42))
	}
}
